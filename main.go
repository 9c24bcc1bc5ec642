package main

import (
	"lexercore/config"
	"lexercore/contract"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

var logger = flogging.MustGetLogger("lexercore")

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Error loading chaincode configuration: %v", err)
	}
	if err := flogging.Global.ActivateSpec(cfg.LogSpec); err != nil {
		config.Exitf("Error activating log spec '%s': %v", cfg.LogSpec, err)
	}

	cc, err := contractapi.NewChaincode(contract.NewRegistryContract())
	if err != nil {
		config.Exitf("Error creating RegistryContract chaincode: %v", err)
	}

	if !cfg.ExternalService() {
		if err := cc.Start(); err != nil {
			config.Exitf("Error starting chaincode: %v", err)
		}
		return
	}

	tlsProps, err := cfg.TLSProperties()
	if err != nil {
		config.Exitf("Error loading chaincode TLS material: %v", err)
	}
	server := &shim.ChaincodeServer{
		CCID:     cfg.ChaincodeID,
		Address:  cfg.Address,
		CC:       cc,
		TLSProps: tlsProps,
	}
	logger.Infof("Starting chaincode service '%s' on %s (TLS disabled: %t)", cfg.ChaincodeID, cfg.Address, cfg.TLSDisabled)
	if err := server.Start(); err != nil {
		config.Exitf("Error starting chaincode service: %v", err)
	}
}
