package ledger

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/mesalista/backend/internal/config"
	"github.com/mesalista/backend/internal/metrics"
	"github.com/mesalista/backend/internal/model"
)

// Gateway is the write/read surface of the customer registry contract.
// Every write is signed by the gateway's single operating account and blocks
// until the transaction is mined.
type Gateway interface {
	RegisterCustomer(ctx context.Context, id int64, p model.Profile) (*Receipt, error)
	SetStatus(ctx context.Context, id int64, active bool) (*Receipt, error)
	RecordPayment(ctx context.Context, customerID int64, hash [32]byte, amount int64) (*Receipt, error)
	GetCustomer(ctx context.Context, id int64) (*model.LedgerCustomer, error)
	GetHistory(ctx context.Context, customerID int64) ([]model.LedgerPayment, error)
}

// Receipt is the confirmed result of a ledger write.
type Receipt struct {
	TxHash      string `json:"tx_hash"`
	BlockNumber uint64 `json:"block_number"`
}

// Client binds the registry and token contracts over a JSON-RPC endpoint.
type Client struct {
	eth      *ethclient.Client
	signer   *bind.TransactOpts
	operator common.Address
	registry *bind.BoundContract
	token    *bind.BoundContract
	log      *zap.Logger
}

var _ Gateway = (*Client)(nil)

// Dial connects to the EVM node and binds both contracts using the operating
// key from config.
func Dial(cfg config.LedgerConfig, log *zap.Logger) (*Client, error) {
	if cfg.RegistryAddress == "" || cfg.PrivateKey == "" {
		return nil, fmt.Errorf("ledger config incomplete: registry address and private key are required")
	}

	eth, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.RPCURL, err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse operating key: %w", err)
	}

	signer, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(cfg.ChainID))
	if err != nil {
		return nil, fmt.Errorf("build transactor: %w", err)
	}

	regABI, err := abi.JSON(strings.NewReader(registryABI))
	if err != nil {
		return nil, fmt.Errorf("parse registry ABI: %w", err)
	}
	tokABI, err := abi.JSON(strings.NewReader(tokenABI))
	if err != nil {
		return nil, fmt.Errorf("parse token ABI: %w", err)
	}

	c := &Client{
		eth:      eth,
		signer:   signer,
		operator: crypto.PubkeyToAddress(key.PublicKey),
		registry: bind.NewBoundContract(common.HexToAddress(cfg.RegistryAddress), regABI, eth, eth, eth),
		log:      log,
	}
	if cfg.TokenAddress != "" {
		c.token = bind.NewBoundContract(common.HexToAddress(cfg.TokenAddress), tokABI, eth, eth, eth)
	}
	return c, nil
}

// Operator returns the address of the fixed signing account.
func (c *Client) Operator() string { return c.operator.Hex() }

func (c *Client) Close() { c.eth.Close() }

// transact submits one state-changing call and waits for one confirmation.
func (c *Client) transact(ctx context.Context, contract *bind.BoundContract, method string, args ...any) (*Receipt, error) {
	opts := *c.signer
	opts.Context = ctx

	start := time.Now()
	tx, err := contract.Transact(&opts, method, args...)
	if err != nil {
		return nil, &TxError{Method: method, Err: err}
	}

	rcpt, err := bind.WaitMined(ctx, c.eth, tx)
	if err != nil {
		return nil, &TxError{Method: method, TxHash: tx.Hash().Hex(), Err: err}
	}
	metrics.LedgerTxSeconds.WithLabelValues(method).Observe(time.Since(start).Seconds())

	if rcpt.Status != types.ReceiptStatusSuccessful {
		return nil, &TxError{Method: method, TxHash: tx.Hash().Hex(), Err: ErrReverted}
	}

	c.log.Debug("ledger write mined",
		zap.String("method", method),
		zap.String("tx", tx.Hash().Hex()),
		zap.Uint64("block", rcpt.BlockNumber.Uint64()),
	)
	return &Receipt{TxHash: tx.Hash().Hex(), BlockNumber: rcpt.BlockNumber.Uint64()}, nil
}

func (c *Client) call(ctx context.Context, contract *bind.BoundContract, method string, out *[]any, args ...any) error {
	if err := contract.Call(&bind.CallOpts{Context: ctx}, out, method, args...); err != nil {
		return &ReadError{Method: method, Err: err}
	}
	return nil
}

// ---- registry writes ----

func (c *Client) RegisterCustomer(ctx context.Context, id int64, p model.Profile) (*Receipt, error) {
	return c.transact(ctx, c.registry, "registerCustomer",
		big.NewInt(id), p.Name, p.Phone, p.Email, p.Address, p.Card)
}

func (c *Client) SetStatus(ctx context.Context, id int64, active bool) (*Receipt, error) {
	return c.transact(ctx, c.registry, "setStatus", big.NewInt(id), active)
}

func (c *Client) RecordPayment(ctx context.Context, customerID int64, hash [32]byte, amount int64) (*Receipt, error) {
	return c.transact(ctx, c.registry, "recordPayment",
		big.NewInt(customerID), hash, big.NewInt(amount))
}

// ---- registry reads ----

func (c *Client) GetCustomer(ctx context.Context, id int64) (*model.LedgerCustomer, error) {
	var out []any
	if err := c.call(ctx, c.registry, "getCustomer", &out, big.NewInt(id)); err != nil {
		return nil, err
	}

	mirrorID := *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	if !mirrorID.IsInt64() {
		return nil, &ReadError{Method: "getCustomer", Err: fmt.Errorf("id %s overflows int64", mirrorID)}
	}

	return &model.LedgerCustomer{
		ID:      mirrorID.Int64(),
		Name:    *abi.ConvertType(out[1], new(string)).(*string),
		Phone:   *abi.ConvertType(out[2], new(string)).(*string),
		Email:   *abi.ConvertType(out[3], new(string)).(*string),
		Address: *abi.ConvertType(out[4], new(string)).(*string),
		Card:    *abi.ConvertType(out[5], new(string)).(*string),
		Active:  *abi.ConvertType(out[6], new(bool)).(*bool),
	}, nil
}

// historyEntry mirrors the registry's Payment struct for tuple decoding.
type historyEntry struct {
	CustomerID  *big.Int `abi:"customerId"`
	PaymentHash [32]byte `abi:"paymentHash"`
	Amount      *big.Int `abi:"amount"`
	Timestamp   *big.Int `abi:"timestamp"`
}

func (c *Client) GetHistory(ctx context.Context, customerID int64) ([]model.LedgerPayment, error) {
	var out []any
	if err := c.call(ctx, c.registry, "getHistory", &out, big.NewInt(customerID)); err != nil {
		return nil, err
	}

	raw := *abi.ConvertType(out[0], new([]historyEntry)).(*[]historyEntry)
	list := make([]model.LedgerPayment, 0, len(raw))
	for _, e := range raw {
		if !e.CustomerID.IsInt64() || !e.Amount.IsInt64() || !e.Timestamp.IsInt64() {
			return nil, &ReadError{Method: "getHistory", Err: fmt.Errorf("entry overflows int64")}
		}
		list = append(list, model.LedgerPayment{
			CustomerID: e.CustomerID.Int64(),
			Hash:       "0x" + common.Bytes2Hex(e.PaymentHash[:]),
			Amount:     e.Amount.Int64(),
			Timestamp:  e.Timestamp.Int64(),
		})
	}
	return list, nil
}
