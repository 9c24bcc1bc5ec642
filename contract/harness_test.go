package contract

import (
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/hyperledger/fabric-chaincode-go/shimtest"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric-protos-go/peer"
)

// fakeIdentity satisfies cid.ClientIdentity for a fixed X.509 subject.
type fakeIdentity struct {
	id    string
	mspID string
	cn    string
	ou    string
	attrs map[string]string
}

// newIdentity returns a client identity, the NodeOU of ordinary participants.
func newIdentity(cn, mspID string) *fakeIdentity {
	return &fakeIdentity{id: x509IDWithOU(cn, "client"), mspID: mspID, cn: cn, ou: "client", attrs: map[string]string{}}
}

// newAdminIdentity returns an identity whose certificate carries the admin NodeOU.
func newAdminIdentity(cn, mspID string) *fakeIdentity {
	return &fakeIdentity{id: x509IDWithOU(cn, "admin"), mspID: mspID, cn: cn, ou: "admin", attrs: map[string]string{}}
}

// x509ID builds the base64 identity string Fabric reports for a client certificate.
func x509ID(cn string) string {
	return x509IDWithOU(cn, "client")
}

func x509IDWithOU(cn, ou string) string {
	raw := fmt.Sprintf("x509::CN=%s,OU=%s,O=Org1::CN=ca.org1.example.com,O=Org1", cn, ou)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

func (f *fakeIdentity) GetID() (string, error)    { return f.id, nil }
func (f *fakeIdentity) GetMSPID() (string, error) { return f.mspID, nil }

func (f *fakeIdentity) GetAttributeValue(name string) (string, bool, error) {
	v, ok := f.attrs[name]
	return v, ok, nil
}

func (f *fakeIdentity) AssertAttributeValue(name, value string) error {
	if v, ok := f.attrs[name]; !ok || v != value {
		return fmt.Errorf("attribute %s does not equal %s", name, value)
	}
	return nil
}

func (f *fakeIdentity) GetX509Certificate() (*x509.Certificate, error) {
	if f.ou == "" {
		return nil, errors.New("no certificate in fake identity")
	}
	return &x509.Certificate{Subject: pkix.Name{CommonName: f.cn, OrganizationalUnit: []string{f.ou}}}, nil
}

// testLedger drives the contract against a mock world state, one transaction per call.
type testLedger struct {
	stub     *shimtest.MockStub
	contract *RegistryContract
	events   []*peer.ChaincodeEvent
	txSeq    int
}

func newTestLedger() *testLedger {
	return &testLedger{
		stub:     shimtest.NewMockStub(ContractName, nil),
		contract: NewRegistryContract(),
	}
}

func (l *testLedger) context(identity *fakeIdentity) *contractapi.TransactionContext {
	ctx := new(contractapi.TransactionContext)
	ctx.SetStub(l.stub)
	if identity != nil {
		ctx.SetClientIdentity(identity)
	}
	return ctx
}

// invoke runs fn as a single transaction submitted by identity and collects
// any chaincode events it emitted.
func (l *testLedger) invoke(identity *fakeIdentity, fn func(ctx contractapi.TransactionContextInterface) error) error {
	l.txSeq++
	txID := fmt.Sprintf("tx-%d", l.txSeq)
	l.stub.MockTransactionStart(txID)
	defer l.stub.MockTransactionEnd(txID)

	err := fn(l.context(identity))
	l.drainEvents()
	return err
}

func (l *testLedger) drainEvents() {
	for {
		select {
		case ev := <-l.stub.ChaincodeEventsChannel:
			l.events = append(l.events, ev)
		default:
			return
		}
	}
}

func (l *testLedger) lastEvent() *peer.ChaincodeEvent {
	if len(l.events) == 0 {
		return nil
	}
	return l.events[len(l.events)-1]
}

// snapshot copies the world state so tests can assert a call left it untouched.
func (l *testLedger) snapshot() map[string]string {
	out := make(map[string]string, len(l.stub.State))
	for k, v := range l.stub.State {
		out[k] = string(v)
	}
	return out
}

func (l *testLedger) initRegistry(admin *fakeIdentity) error {
	return l.invoke(admin, func(ctx contractapi.TransactionContextInterface) error {
		return l.contract.InitRegistry(ctx)
	})
}

func (l *testLedger) updateProfile(caller *fakeIdentity, alias, metadataURL string) error {
	return l.invoke(caller, func(ctx contractapi.TransactionContextInterface) error {
		return l.contract.UpdateParticipantProfile(ctx, alias, metadataURL)
	})
}

func (l *testLedger) registerResourceType(caller *fakeIdentity, id, name, description string, level uint) error {
	return l.invoke(caller, func(ctx contractapi.TransactionContextInterface) error {
		return l.contract.RegisterResourceType(ctx, id, name, description, level)
	})
}
