package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"lexercore/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

var idLogger = flogging.MustGetLogger("lexercore.identitymanager")

// administratorObjectType keys the singleton administrator record. No attributes.
const administratorObjectType = "RegistryAdministrator"

// adminOU is the NodeOU Fabric CAs put on administrator certificates.
const adminOU = "admin"

// IdentityManager resolves the transaction invoker and manages the registry administrator.
type IdentityManager struct {
	Ctx contractapi.TransactionContextInterface
}

// NewIdentityManager creates a new instance of IdentityManager.
func NewIdentityManager(ctx contractapi.TransactionContextInterface) *IdentityManager {
	return &IdentityManager{Ctx: ctx}
}

// --- Internal Helper Functions ---

func (im *IdentityManager) getCurrentTxTimestamp() (time.Time, error) {
	ts, err := im.Ctx.GetStub().GetTxTimestamp()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get transaction timestamp: %w", err)
	}
	return ts.AsTime(), nil
}

func isValidX509ID(id string) bool {
	return strings.HasPrefix(id, "x509::") || strings.HasPrefix(id, "eDUwOTo6") // "eDUwOTo6" is "x509::" base64 encoded
}

func (im *IdentityManager) createAdministratorCompositeKey() (string, error) {
	return im.Ctx.GetStub().CreateCompositeKey(administratorObjectType, []string{})
}

// --- Caller Identity ---

// GetCurrentIdentityFullID retrieves the full X.509 ID of the current transactor.
func (im *IdentityManager) GetCurrentIdentityFullID() (string, error) {
	clientIdentity := im.Ctx.GetClientIdentity()
	if clientIdentity == nil {
		return "", errors.New("client identity is nil from context")
	}
	id, err := clientIdentity.GetID()
	if err != nil {
		return "", fmt.Errorf("failed to get client identity ID from context: %w", err)
	}
	if id == "" {
		return "", errors.New("client identity ID from context is empty")
	}
	if !isValidX509ID(id) {
		idLogger.Warningf("Current client ID '%s' does not appear to be a standard X.509 format.", id)
	}
	return id, nil
}

// GetCurrentMSPID retrieves the MSP ID of the current transactor.
func (im *IdentityManager) GetCurrentMSPID() (string, error) {
	clientIdentity := im.Ctx.GetClientIdentity()
	if clientIdentity == nil {
		return "", errors.New("client identity is nil from context")
	}
	mspID, err := clientIdentity.GetMSPID()
	if err != nil {
		return "", fmt.Errorf("failed to get client MSPID from context: %w", err)
	}
	return mspID, nil
}

// HasAdminOU reports whether the caller's certificate carries the admin NodeOU.
func (im *IdentityManager) HasAdminOU() (bool, error) {
	clientIdentity := im.Ctx.GetClientIdentity()
	if clientIdentity == nil {
		return false, errors.New("client identity is nil from context")
	}
	cert, err := clientIdentity.GetX509Certificate()
	if err != nil {
		return false, fmt.Errorf("failed to get client certificate from context: %w", err)
	}
	if cert == nil {
		return false, nil
	}
	for _, ou := range cert.Subject.OrganizationalUnit {
		if strings.EqualFold(ou, adminOU) {
			return true, nil
		}
	}
	return false, nil
}

// MustGetCallerFullID is a utility to get the caller's ID, returning a placeholder on error.
// Useful for logging when a full error return isn't desired.
func MustGetCallerFullID(ctx contractapi.TransactionContextInterface) string {
	clientIdentity := ctx.GetClientIdentity()
	if clientIdentity == nil {
		idLogger.Error("MustGetCallerFullID: Client identity is nil from context. Returning placeholder.")
		return "ERROR_NIL_CLIENT_IDENTITY"
	}
	id, err := clientIdentity.GetID()
	if err != nil {
		idLogger.Errorf("MustGetCallerFullID: Failed to get client identity ID: %v. Returning placeholder.", err)
		return "ERROR_GETTING_CALLER_ID"
	}
	if id == "" {
		idLogger.Error("MustGetCallerFullID: Client identity ID from context is empty. Returning placeholder.")
		return "ERROR_EMPTY_CALLER_ID"
	}
	return id
}

// --- Administrator ---

// GetAdministrator returns the administrator record, or nil before the registry is initialized.
func (im *IdentityManager) GetAdministrator() (*model.AdministratorRecord, error) {
	key, err := im.createAdministratorCompositeKey()
	if err != nil {
		return nil, fmt.Errorf("failed to create administrator key: %w", err)
	}
	raw, err := im.Ctx.GetStub().GetState(key)
	if err != nil {
		return nil, fmt.Errorf("ledger error retrieving administrator record: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	var rec model.AdministratorRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal administrator record: %w", err)
	}
	return &rec, nil
}

// IsAdministrator reports whether fullID is the recorded administrator.
func (im *IdentityManager) IsAdministrator(fullID string) (bool, error) {
	rec, err := im.GetAdministrator()
	if err != nil {
		return false, err
	}
	return rec != nil && rec.FullID == fullID, nil
}

func (im *IdentityManager) IsCurrentUserAdministrator() (bool, error) {
	callerFullID, err := im.GetCurrentIdentityFullID()
	if err != nil {
		return false, fmt.Errorf("failed to get current user's FullID for administrator check: %w", err)
	}
	return im.IsAdministrator(callerFullID)
}

// RequireAdministrator fails with ErrUnauthorized unless the caller is the administrator.
func (im *IdentityManager) RequireAdministrator() error {
	callerFullID, err := im.GetCurrentIdentityFullID()
	if err != nil {
		return fmt.Errorf("failed to get current user's FullID for RequireAdministrator: %w", err)
	}
	isAdmin, err := im.IsAdministrator(callerFullID)
	if err != nil {
		return fmt.Errorf("failed to check administrator status of '%s': %w", callerFullID, err)
	}
	if !isAdmin {
		return fmt.Errorf("%w: caller '%s' is not the registry administrator", ErrUnauthorized, callerFullID)
	}
	idLogger.Debugf("Administrator check passed for '%s'.", callerFullID)
	return nil
}

// AssignAdministrator replaces the administrator record. Callers perform authorization.
func (im *IdentityManager) AssignAdministrator(targetFullID, targetMSPID, assignedBy string, position uint64) (*model.AdministratorRecord, error) {
	now, err := im.getCurrentTxTimestamp()
	if err != nil {
		return nil, err
	}
	rec := model.AdministratorRecord{
		ObjectType:         administratorObjectType,
		FullID:             targetFullID,
		MSPID:              targetMSPID,
		AssignedBy:         assignedBy,
		AssignedAt:         now.Format(time.RFC3339),
		AssignedAtSequence: position,
	}
	key, err := im.createAdministratorCompositeKey()
	if err != nil {
		return nil, fmt.Errorf("failed to create administrator key: %w", err)
	}
	recBytes, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal administrator record for '%s': %w", targetFullID, err)
	}
	if err := im.Ctx.GetStub().PutState(key, recBytes); err != nil {
		return nil, fmt.Errorf("failed to save administrator record for '%s': %w", targetFullID, err)
	}
	idLogger.Infof("Identity '%s' (MSP '%s') is now the registry administrator, assigned by '%s'.", targetFullID, targetMSPID, assignedBy)
	return &rec, nil
}
