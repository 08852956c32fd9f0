package recon

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mesalista/backend/internal/assets"
	"github.com/mesalista/backend/internal/ledger"
	"github.com/mesalista/backend/internal/metrics"
	"github.com/mesalista/backend/internal/model"
	"github.com/mesalista/backend/internal/repository"
	"github.com/mesalista/backend/internal/util"
)

// Operation names as recorded in the audit trail.
const (
	OpRegister        = "register"
	OpDeactivate      = "deactivate"
	OpReactivate      = "reactivate"
	OpRecordPayment   = "record_payment"
	OpValidateID      = "validate_identity"
	OpValidateHistory = "validate_history"
	OpEnsureDocument  = "ensure_document"
	OpEnsureToken     = "ensure_token"
)

// Auditor receives every finished operation. Implementations must be
// best-effort; recording never fails the operation it describes.
type Auditor interface {
	Record(ctx context.Context, op model.Operation)
}

// Service sequences the ordered relational/ledger writes and the comparison
// reads that keep the two stores consistent. Operations are best-effort
// sequential: no compensation, no retries, no cross-request locking. Partial
// completion is expected and stays detectable through the Validate calls.
type Service struct {
	customers repository.CustomersRepository
	payments  repository.PaymentsRepository
	gateway   ledger.Gateway
	minter    ledger.Minter
	renderer  assets.Renderer
	uploader  assets.Uploader
	auditor   Auditor
	log       *zap.Logger
}

func New(
	customers repository.CustomersRepository,
	payments repository.PaymentsRepository,
	gateway ledger.Gateway,
	minter ledger.Minter,
	renderer assets.Renderer,
	uploader assets.Uploader,
	auditor Auditor,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		customers: customers,
		payments:  payments,
		gateway:   gateway,
		minter:    minter,
		renderer:  renderer,
		uploader:  uploader,
		auditor:   auditor,
		log:       log,
	}
}

func (s *Service) finish(ctx context.Context, opID, op string, customerID int64, outcome, txHash, detail string) {
	metrics.OperationsTotal.WithLabelValues(op, outcome).Inc()
	if s.auditor != nil {
		s.auditor.Record(ctx, model.Operation{
			OperationID: opID,
			Op:          op,
			CustomerID:  customerID,
			Outcome:     outcome,
			TxHash:      txHash,
			Detail:      detail,
			CreatedAt:   time.Now(),
		})
	}
}

// ---- Register ----

type RegisterParams struct {
	ID      int64
	Account string // end-user attribution, never a signer
	Profile model.Profile
}

type RegisterResult struct {
	OperationID string `json:"operation_id"`
	TxHash      string `json:"tx_hash"`
}

// Register mirrors the customer onto the ledger, then records the
// submitting account relationally as attribution. Ledger first: if the
// attribution write fails afterwards, the ledger record stands and the
// caller retries just the attribution step.
func (s *Service) Register(ctx context.Context, p RegisterParams) (*RegisterResult, error) {
	opID := util.NewOperationID()

	if p.ID <= 0 {
		return nil, &ValidationError{Msg: "customer id is required"}
	}
	if !util.ValidAccount(p.Account) {
		return nil, &ValidationError{Msg: "submitting account is missing or malformed"}
	}

	rcpt, err := s.gateway.RegisterCustomer(ctx, p.ID, p.Profile)
	if err != nil {
		s.finish(ctx, opID, OpRegister, p.ID, model.OutcomeError, "", err.Error())
		return nil, &LedgerError{Step: "registerCustomer", Err: err}
	}

	if err := s.customers.AttachLedgerAddress(ctx, p.ID, util.NormalizeAccount(p.Account)); err != nil {
		// The ledger record exists but its attribution is missing
		// relationally. Surfaced so the caller re-runs the attach.
		s.finish(ctx, opID, OpRegister, p.ID, model.OutcomeError, rcpt.TxHash, "attribution not recorded")
		return nil, &StoreError{Step: "attachLedgerAddress", Err: err}
	}

	s.finish(ctx, opID, OpRegister, p.ID, model.OutcomeOK, rcpt.TxHash, "")
	return &RegisterResult{OperationID: opID, TxHash: rcpt.TxHash}, nil
}

// ---- Deactivate / Reactivate ----

type StatusResult struct {
	OperationID string `json:"operation_id"`
	Active      bool   `json:"active"`
	TxHash      string `json:"tx_hash"`
}

// Deactivate flips the relational flag first, then updates the ledger
// mirror. Opposite order to Register: the relational flag drives list
// rendering and must reflect intent immediately; the ledger is the audit
// record and may lag.
func (s *Service) Deactivate(ctx context.Context, id int64) (*StatusResult, error) {
	return s.setStatus(ctx, OpDeactivate, id, false)
}

// Reactivate is symmetric to Deactivate, same ordering.
func (s *Service) Reactivate(ctx context.Context, id int64) (*StatusResult, error) {
	return s.setStatus(ctx, OpReactivate, id, true)
}

func (s *Service) setStatus(ctx context.Context, op string, id int64, active bool) (*StatusResult, error) {
	opID := util.NewOperationID()

	if id <= 0 {
		return nil, &ValidationError{Msg: "customer id is required"}
	}

	if err := s.customers.SetActive(ctx, id, active); err != nil {
		s.finish(ctx, opID, op, id, model.OutcomeError, "", err.Error())
		return nil, &StoreError{Step: "setActive", Err: err}
	}

	rcpt, err := s.gateway.SetStatus(ctx, id, active)
	if err != nil {
		// Relational flag already flipped; the mirror lags until a retry.
		s.finish(ctx, opID, op, id, model.OutcomeError, "", "ledger mirror not updated")
		return nil, &LedgerError{Step: "setStatus", Err: err}
	}

	s.finish(ctx, opID, op, id, model.OutcomeOK, rcpt.TxHash, "")
	return &StatusResult{OperationID: opID, Active: active, TxHash: rcpt.TxHash}, nil
}

// ---- RecordPayment ----

type PaymentResult struct {
	OperationID string `json:"operation_id"`
	PaymentID   int64  `json:"payment_id"`
	Hash        string `json:"hash"`
	TxHash      string `json:"tx_hash"`
}

// RecordPayment inserts the relational row (the hash depends on its assigned
// id), submits the hash and amount on-chain, then back-fills the relational
// row with the exact hash that went out. Either half-finished state is
// detectable later by replaying the digest.
func (s *Service) RecordPayment(ctx context.Context, customerID, amount int64) (*PaymentResult, error) {
	opID := util.NewOperationID()

	if customerID <= 0 {
		return nil, &ValidationError{Msg: "customer id is required"}
	}
	if amount <= 0 {
		return nil, &ValidationError{Msg: "amount must be positive"}
	}

	paymentID, err := s.payments.Insert(ctx, customerID, amount)
	if err != nil {
		s.finish(ctx, opID, OpRecordPayment, customerID, model.OutcomeError, "", err.Error())
		return nil, &StoreError{Step: "insertPayment", Err: err}
	}

	sum := PaymentHash(paymentID, customerID, amount)
	hashHex := PaymentHashHex(paymentID, customerID, amount)

	rcpt, err := s.gateway.RecordPayment(ctx, customerID, sum, amount)
	if err != nil {
		// Row persists with a NULL hash: present relationally, absent on
		// the ledger. Found later by the sweep.
		s.finish(ctx, opID, OpRecordPayment, customerID, model.OutcomeError, "", fmt.Sprintf("payment %d not on ledger", paymentID))
		return nil, &LedgerError{Step: "recordPayment", Err: err}
	}

	if err := s.payments.AttachHash(ctx, paymentID, hashHex); err != nil {
		// Hash is on-chain but missing relationally; recomputing the digest
		// for row `paymentID` reproduces it exactly.
		s.finish(ctx, opID, OpRecordPayment, customerID, model.OutcomeError, rcpt.TxHash, fmt.Sprintf("hash backfill missing for payment %d", paymentID))
		return nil, &StoreError{Step: "attachPaymentHash", Err: err}
	}

	s.finish(ctx, opID, OpRecordPayment, customerID, model.OutcomeOK, rcpt.TxHash, "")
	return &PaymentResult{OperationID: opID, PaymentID: paymentID, Hash: hashHex, TxHash: rcpt.TxHash}, nil
}

// ---- ValidateIdentity ----

type IdentityReport struct {
	OperationID string   `json:"operation_id"`
	Valid       bool     `json:"valid"`
	Divergent   bool     `json:"divergent"`
	Mismatched  []string `json:"mismatched_fields,omitempty"`
	Reason      string   `json:"reason,omitempty"`
}

// ValidateIdentity fails closed: without a matching attribution the answer
// is Invalid and no field comparison happens. A field mismatch with a
// matching attribution is a Divergence, which is a different finding.
func (s *Service) ValidateIdentity(ctx context.Context, customerID int64, claimedAccount string) (*IdentityReport, error) {
	opID := util.NewOperationID()

	if customerID <= 0 {
		return nil, &ValidationError{Msg: "customer id is required"}
	}

	c, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, &StoreError{Step: "getCustomer", Err: err}
	}
	if c == nil {
		return nil, &ValidationError{Msg: fmt.Sprintf("customer %d not found", customerID)}
	}

	if !c.LedgerAddress.Valid || !util.SameAccount(c.LedgerAddress.String, claimedAccount) {
		s.finish(ctx, opID, OpValidateID, customerID, model.OutcomeInvalid, "", "attribution mismatch")
		return &IdentityReport{
			OperationID: opID,
			Valid:       false,
			Reason:      "account does not match the registration attribution",
		}, nil
	}

	mirror, err := s.gateway.GetCustomer(ctx, customerID)
	if err != nil {
		s.finish(ctx, opID, OpValidateID, customerID, model.OutcomeError, "", err.Error())
		return nil, &LedgerError{Step: "getCustomer", Err: err}
	}

	var mismatched []string
	for _, f := range []struct {
		name       string
		rel, chain string
	}{
		{"name", c.Name, mirror.Name},
		{"phone", c.Phone, mirror.Phone},
		{"email", c.Email, mirror.Email},
	} {
		if strings.TrimSpace(f.rel) != strings.TrimSpace(f.chain) {
			mismatched = append(mismatched, f.name)
		}
	}

	report := &IdentityReport{OperationID: opID, Valid: true}
	if len(mismatched) > 0 {
		report.Divergent = true
		report.Mismatched = mismatched
		s.finish(ctx, opID, OpValidateID, customerID, model.OutcomeDivergence, "", strings.Join(mismatched, ","))
		return report, nil
	}

	s.finish(ctx, opID, OpValidateID, customerID, model.OutcomeOK, "", "")
	return report, nil
}

// ---- ValidateHistory ----

type HistoryMismatch struct {
	Index            int   `json:"index"`
	RelationalAmount int64 `json:"relational_amount"`
	LedgerAmount     int64 `json:"ledger_amount"`
}

type HistoryReport struct {
	OperationID       string            `json:"operation_id"`
	Equal             bool              `json:"equal"`
	RelationalCount   int               `json:"relational_count"`
	LedgerCount       int               `json:"ledger_count"`
	Mismatches        []HistoryMismatch `json:"mismatches,omitempty"`
	LedgerUnavailable bool              `json:"ledger_unavailable,omitempty"`
}

// ValidateHistory compares the two payment lists positionally: equal iff
// same count and the amounts agree at every index in arrival order. A ledger
// read failure degrades to an empty on-chain list rather than failing.
func (s *Service) ValidateHistory(ctx context.Context, customerID int64) (*HistoryReport, error) {
	opID := util.NewOperationID()

	if customerID <= 0 {
		return nil, &ValidationError{Msg: "customer id is required"}
	}

	rel, err := s.payments.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, &StoreError{Step: "listPayments", Err: err}
	}

	report := &HistoryReport{OperationID: opID, RelationalCount: len(rel)}

	chain, err := s.gateway.GetHistory(ctx, customerID)
	if err != nil {
		s.log.Warn("ledger history unavailable, comparing against empty list",
			zap.Int64("customer_id", customerID), zap.Error(err))
		chain = nil
		report.LedgerUnavailable = true
	}
	report.LedgerCount = len(chain)

	report.Equal = len(rel) == len(chain)
	for i := 0; i < len(rel) && i < len(chain); i++ {
		if rel[i].Amount != chain[i].Amount {
			report.Equal = false
			report.Mismatches = append(report.Mismatches, HistoryMismatch{
				Index:            i,
				RelationalAmount: rel[i].Amount,
				LedgerAmount:     chain[i].Amount,
			})
		}
	}

	outcome := model.OutcomeOK
	if !report.Equal {
		outcome = model.OutcomeDivergence
	}
	s.finish(ctx, opID, OpValidateHistory, customerID, outcome, "",
		fmt.Sprintf("relational=%d ledger=%d", report.RelationalCount, report.LedgerCount))
	return report, nil
}

// ---- EnsureDocument ----

type DocumentResult struct {
	OperationID string `json:"operation_id"`
	CID         string `json:"cid"`
	Reused      bool   `json:"reused"`
}

// EnsureDocument is idempotent per customer: an existing CID is returned
// unchanged and nothing is rendered or uploaded again.
func (s *Service) EnsureDocument(ctx context.Context, customerID int64) (*DocumentResult, error) {
	opID := util.NewOperationID()

	c, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, &StoreError{Step: "getCustomer", Err: err}
	}
	if c == nil {
		return nil, &ValidationError{Msg: fmt.Sprintf("customer %d not found", customerID)}
	}

	if c.DocumentCID.Valid && c.DocumentCID.String != "" {
		s.finish(ctx, opID, OpEnsureDocument, customerID, model.OutcomeOK, "", "reused")
		return &DocumentResult{OperationID: opID, CID: c.DocumentCID.String, Reused: true}, nil
	}

	data, err := s.renderer.CustomerReport(*c)
	if err != nil {
		s.finish(ctx, opID, OpEnsureDocument, customerID, model.OutcomeError, "", err.Error())
		return nil, fmt.Errorf("render document: %w", err)
	}

	cid, err := s.uploader.Upload(ctx, data)
	if err != nil {
		s.finish(ctx, opID, OpEnsureDocument, customerID, model.OutcomeError, "", err.Error())
		return nil, fmt.Errorf("upload document: %w", err)
	}

	if err := s.customers.AttachDocumentCID(ctx, customerID, cid); err != nil {
		s.finish(ctx, opID, OpEnsureDocument, customerID, model.OutcomeError, "", "cid not recorded")
		return nil, &StoreError{Step: "attachDocumentCid", Err: err}
	}

	s.finish(ctx, opID, OpEnsureDocument, customerID, model.OutcomeOK, "", "")
	return &DocumentResult{OperationID: opID, CID: cid}, nil
}

// ---- EnsureToken ----

type TokenResult struct {
	OperationID string `json:"operation_id"`
	TokenID     int64  `json:"token_id"`
	TxHash      string `json:"tx_hash,omitempty"`
	Reused      bool   `json:"reused"`
	Recovered   bool   `json:"recovered,omitempty"`
}

// EnsureToken is idempotent per customer. On a mint failure it reads the
// token contract before giving up: a prior mint may have landed on-chain
// while the relational write that would have recorded it never ran.
func (s *Service) EnsureToken(ctx context.Context, customerID int64) (*TokenResult, error) {
	opID := util.NewOperationID()

	c, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, &StoreError{Step: "getCustomer", Err: err}
	}
	if c == nil {
		return nil, &ValidationError{Msg: fmt.Sprintf("customer %d not found", customerID)}
	}

	if c.TokenID.Valid && c.TokenID.Int64 > 0 {
		s.finish(ctx, opID, OpEnsureToken, customerID, model.OutcomeOK, "", "reused")
		return &TokenResult{OperationID: opID, TokenID: c.TokenID.Int64, Reused: true}, nil
	}

	docRef := ""
	if c.DocumentCID.Valid {
		docRef = c.DocumentCID.String
	}

	tokenID, rcpt, err := s.minter.Mint(ctx, customerID, c.Name, docRef)
	if err != nil {
		if existing, rerr := s.minter.TokenByCustomer(ctx, customerID); rerr == nil && existing > 0 {
			if aerr := s.customers.AttachTokenID(ctx, customerID, existing); aerr != nil {
				s.finish(ctx, opID, OpEnsureToken, customerID, model.OutcomeError, "", "token id not recorded")
				return nil, &StoreError{Step: "attachTokenId", Err: aerr}
			}
			s.finish(ctx, opID, OpEnsureToken, customerID, model.OutcomeOK, "", "recovered")
			return &TokenResult{OperationID: opID, TokenID: existing, Recovered: true}, nil
		}
		s.finish(ctx, opID, OpEnsureToken, customerID, model.OutcomeError, "", err.Error())
		return nil, &LedgerError{Step: "mint", Err: err}
	}

	if err := s.customers.AttachTokenID(ctx, customerID, tokenID); err != nil {
		// Token minted on-chain; the next call recovers it via tokenByCustomer.
		s.finish(ctx, opID, OpEnsureToken, customerID, model.OutcomeError, rcpt.TxHash, "token id not recorded")
		return nil, &StoreError{Step: "attachTokenId", Err: err}
	}

	s.finish(ctx, opID, OpEnsureToken, customerID, model.OutcomeOK, rcpt.TxHash, "")
	return &TokenResult{OperationID: opID, TokenID: tokenID, TxHash: rcpt.TxHash}, nil
}
