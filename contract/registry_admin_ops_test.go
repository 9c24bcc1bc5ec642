package contract

import (
	"encoding/json"
	"testing"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/stretchr/testify/require"

	"lexercore/model"
)

func TestNewChaincode(t *testing.T) {
	cc, err := contractapi.NewChaincode(NewRegistryContract())
	require.NoError(t, err)
	require.NotNil(t, cc)
}

func TestGetEvaluateTransactions(t *testing.T) {
	c := NewRegistryContract()
	require.Equal(t, ContractName, c.GetName())
	require.ElementsMatch(t, []string{
		"GetParticipantProfile",
		"GetResourceTypeDetails",
		"GetRegistryAdministrator",
		"GetLedgerSequence",
		"GetCallerIdentity",
	}, c.GetEvaluateTransactions())
}

func TestInitRegistry(t *testing.T) {
	l := newTestLedger()
	deployer := newAdminIdentity("deployer", "Org1MSP")
	other := newIdentity("other", "Org2MSP")

	rec, err := l.contract.GetRegistryAdministrator(l.context(other))
	require.NoError(t, err)
	require.Nil(t, rec)

	require.NoError(t, l.initRegistry(deployer))

	rec, err = l.contract.GetRegistryAdministrator(l.context(other))
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, administratorObjectType, rec.ObjectType)
	require.Equal(t, deployer.id, rec.FullID)
	require.Equal(t, "Org1MSP", rec.MSPID)
	require.Equal(t, deployer.id, rec.AssignedBy)
	require.Equal(t, uint64(0), rec.AssignedAtSequence)
	require.NotEmpty(t, rec.AssignedAt)

	require.Equal(t, EventRegistryInitialized, l.lastEvent().EventName)

	before := l.snapshot()
	err = l.initRegistry(other)
	require.ErrorIs(t, err, ErrAlreadyInitialized)
	err = l.initRegistry(deployer)
	require.ErrorIs(t, err, ErrAlreadyInitialized)
	require.Equal(t, before, l.snapshot())
}

func TestInitRegistry_MissingIdentity(t *testing.T) {
	l := newTestLedger()
	require.Error(t, l.initRegistry(nil))
	require.Empty(t, l.stub.State)
}

func TestInitRegistry_RequiresAdminCertificate(t *testing.T) {
	l := newTestLedger()
	member := newIdentity("wallet_1", "Org1MSP")

	err := l.initRegistry(member)
	require.True(t, IsUnauthorized(err), "got %v", err)
	require.Empty(t, l.stub.State)

	noCert := &fakeIdentity{id: x509ID("no_cert"), mspID: "Org1MSP"}
	require.Error(t, l.initRegistry(noCert))
	require.Empty(t, l.stub.State)

	rec, err := l.contract.GetRegistryAdministrator(l.context(member))
	require.NoError(t, err)
	require.Nil(t, rec)

	deployer := newAdminIdentity("deployer", "Org1MSP")
	require.NoError(t, l.initRegistry(deployer))
	rec, err = l.contract.GetRegistryAdministrator(l.context(member))
	require.NoError(t, err)
	require.Equal(t, deployer.id, rec.FullID)
}

func TestGetLedgerSequence(t *testing.T) {
	l := newTestLedger()
	admin := newAdminIdentity("deployer", "Org1MSP")
	wallet := newIdentity("wallet_1", "Org1MSP")
	other := newIdentity("wallet_2", "Org1MSP")

	seq := func() uint64 {
		pos, err := l.contract.GetLedgerSequence(l.context(wallet))
		require.NoError(t, err)
		return pos
	}

	require.Equal(t, uint64(0), seq())
	require.NoError(t, l.initRegistry(admin))
	require.NoError(t, l.registerResourceType(admin, "analytics", "Performance Analytics", "", 2))
	require.Equal(t, uint64(0), seq(), "only profile creation advances the sequence")

	require.NoError(t, l.updateProfile(wallet, "w", ""))
	require.Equal(t, uint64(1), seq())
	require.NoError(t, l.updateProfile(wallet, "w2", ""))
	require.Equal(t, uint64(1), seq())

	require.Error(t, l.registerResourceType(wallet, "storage", "Storage", "", 2))
	require.Error(t, l.initRegistry(wallet))
	require.Equal(t, uint64(1), seq())

	require.NoError(t, l.updateProfile(other, "o", ""))
	require.Equal(t, uint64(2), seq())
}

func TestGetCallerIdentity(t *testing.T) {
	l := newTestLedger()
	admin := newAdminIdentity("deployer", "Org1MSP")
	wallet := newIdentity("wallet_1", "Org2MSP")
	require.NoError(t, l.initRegistry(admin))

	got, err := l.contract.GetCallerIdentity(l.context(admin))
	require.NoError(t, err)
	require.Equal(t, &model.CallerIdentity{FullID: admin.id, MSPID: "Org1MSP", IsAdministrator: true}, got)

	got, err = l.contract.GetCallerIdentity(l.context(wallet))
	require.NoError(t, err)
	require.Equal(t, &model.CallerIdentity{FullID: wallet.id, MSPID: "Org2MSP", IsAdministrator: false}, got)

	_, err = l.contract.GetCallerIdentity(l.context(nil))
	require.Error(t, err)
}

func TestTransferRegistryAdministration(t *testing.T) {
	l := newTestLedger()
	oldAdmin := newAdminIdentity("deployer", "Org1MSP")
	newAdmin := newIdentity("operator", "Org2MSP")
	require.NoError(t, l.initRegistry(oldAdmin))
	require.NoError(t, l.updateProfile(newIdentity("wallet_1", "Org1MSP"), "w", ""))

	err := l.invoke(oldAdmin, func(ctx contractapi.TransactionContextInterface) error {
		return l.contract.TransferRegistryAdministration(ctx, newAdmin.id, "Org2MSP")
	})
	require.NoError(t, err)

	rec, err := l.contract.GetRegistryAdministrator(l.context(newAdmin))
	require.NoError(t, err)
	require.Equal(t, newAdmin.id, rec.FullID)
	require.Equal(t, "Org2MSP", rec.MSPID)
	require.Equal(t, oldAdmin.id, rec.AssignedBy)
	require.Equal(t, uint64(1), rec.AssignedAtSequence)

	ev := l.lastEvent()
	require.Equal(t, EventRegistryAdministratorTransferred, ev.EventName)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(ev.Payload, &payload))
	require.Equal(t, oldAdmin.id, payload["previousAdministratorFullId"])
	require.Equal(t, newAdmin.id, payload["administratorFullId"])

	require.ErrorIs(t, l.registerResourceType(oldAdmin, "analytics", "Performance Analytics", "", 2), ErrUnauthorized)
	require.NoError(t, l.registerResourceType(newAdmin, "analytics", "Performance Analytics", "", 2))
}

func TestTransferRegistryAdministration_DefaultsToCallerMSP(t *testing.T) {
	l := newTestLedger()
	admin := newAdminIdentity("deployer", "Org1MSP")
	require.NoError(t, l.initRegistry(admin))

	target := x509ID("operator")
	err := l.invoke(admin, func(ctx contractapi.TransactionContextInterface) error {
		return l.contract.TransferRegistryAdministration(ctx, "  "+target+" ", "")
	})
	require.NoError(t, err)

	rec, err := l.contract.GetRegistryAdministrator(l.context(admin))
	require.NoError(t, err)
	require.Equal(t, target, rec.FullID)
	require.Equal(t, "Org1MSP", rec.MSPID)
}

func TestTransferRegistryAdministration_Rejections(t *testing.T) {
	l := newTestLedger()
	admin := newAdminIdentity("deployer", "Org1MSP")
	wallet := newIdentity("wallet_1", "Org1MSP")
	require.NoError(t, l.initRegistry(admin))
	before := l.snapshot()

	transfer := func(caller *fakeIdentity, target string) error {
		return l.invoke(caller, func(ctx contractapi.TransactionContextInterface) error {
			return l.contract.TransferRegistryAdministration(ctx, target, "")
		})
	}

	err := transfer(wallet, wallet.id)
	require.True(t, IsUnauthorized(err), "got %v", err)

	err = transfer(admin, "")
	require.True(t, IsInvalidInput(err), "got %v", err)

	err = transfer(admin, "CN=operator,OU=client")
	require.True(t, IsInvalidInput(err), "got %v", err)

	require.Equal(t, before, l.snapshot())

	// Handing the role to oneself is accepted without a write.
	require.NoError(t, transfer(admin, admin.id))
	require.Equal(t, before, l.snapshot())
}

func TestIdentityManager_IsCurrentUserAdministrator(t *testing.T) {
	l := newTestLedger()
	admin := newAdminIdentity("deployer", "Org1MSP")
	wallet := newIdentity("wallet_1", "Org1MSP")

	isAdmin, err := NewIdentityManager(l.context(admin)).IsCurrentUserAdministrator()
	require.NoError(t, err)
	require.False(t, isAdmin, "nobody administers an uninitialized registry")

	require.NoError(t, l.initRegistry(admin))

	isAdmin, err = NewIdentityManager(l.context(admin)).IsCurrentUserAdministrator()
	require.NoError(t, err)
	require.True(t, isAdmin)

	isAdmin, err = NewIdentityManager(l.context(wallet)).IsCurrentUserAdministrator()
	require.NoError(t, err)
	require.False(t, isAdmin)

	require.Equal(t, "ERROR_NIL_CLIENT_IDENTITY", MustGetCallerFullID(l.context(nil)))
	require.Equal(t, wallet.id, MustGetCallerFullID(l.context(wallet)))
}

func TestIsValidX509ID(t *testing.T) {
	require.True(t, isValidX509ID("x509::CN=a::CN=ca"))
	require.True(t, isValidX509ID(x509ID("a")))
	require.False(t, isValidX509ID("admin"))
	require.False(t, isValidX509ID(""))
}
