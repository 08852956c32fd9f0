package ledger

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Minter mints and reads the customer token contract. The operating account
// receives minted tokens; customers are keyed by id, never by wallet.
type Minter interface {
	Mint(ctx context.Context, customerID int64, name, documentRef string) (int64, *Receipt, error)
	TokenByCustomer(ctx context.Context, customerID int64) (int64, error)
	TokenMetadata(ctx context.Context, tokenID int64) (*TokenMetadata, error)
}

// TokenMetadata is the decoded on-chain token record.
type TokenMetadata struct {
	TokenID     int64  `json:"token_id"`
	CustomerID  int64  `json:"customer_id"`
	Name        string `json:"name"`
	DocumentRef string `json:"document_ref"`
	Timestamp   int64  `json:"timestamp"`
	Owner       string `json:"owner"`
}

var _ Minter = (*Client)(nil)

// Mint submits the mint transaction and then reads back the token id the
// contract assigned for the customer.
func (c *Client) Mint(ctx context.Context, customerID int64, name, documentRef string) (int64, *Receipt, error) {
	if c.token == nil {
		return 0, nil, &TxError{Method: "mintCustomerToken", Err: fmt.Errorf("token contract not configured")}
	}
	if documentRef == "" {
		documentRef = "none"
	}

	rcpt, err := c.transact(ctx, c.token, "mintCustomerToken",
		c.operator, big.NewInt(customerID), name, documentRef)
	if err != nil {
		return 0, nil, err
	}

	tokenID, err := c.TokenByCustomer(ctx, customerID)
	if err != nil {
		return 0, rcpt, err
	}
	return tokenID, rcpt, nil
}

// TokenByCustomer returns the token id minted for the customer, 0 when none.
func (c *Client) TokenByCustomer(ctx context.Context, customerID int64) (int64, error) {
	if c.token == nil {
		return 0, &ReadError{Method: "tokenByCustomer", Err: fmt.Errorf("token contract not configured")}
	}

	var out []any
	if err := c.call(ctx, c.token, "tokenByCustomer", &out, big.NewInt(customerID)); err != nil {
		return 0, err
	}

	id := *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	if !id.IsInt64() {
		return 0, &ReadError{Method: "tokenByCustomer", Err: fmt.Errorf("token id %s overflows int64", id)}
	}
	return id.Int64(), nil
}

func (c *Client) TokenMetadata(ctx context.Context, tokenID int64) (*TokenMetadata, error) {
	if c.token == nil {
		return nil, &ReadError{Method: "tokenMetadata", Err: fmt.Errorf("token contract not configured")}
	}

	var out []any
	if err := c.call(ctx, c.token, "tokenMetadata", &out, big.NewInt(tokenID)); err != nil {
		return nil, err
	}

	customerID := *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	ts := *abi.ConvertType(out[3], new(*big.Int)).(**big.Int)
	if !customerID.IsInt64() || !ts.IsInt64() {
		return nil, &ReadError{Method: "tokenMetadata", Err: fmt.Errorf("value overflows int64")}
	}

	md := &TokenMetadata{
		TokenID:     tokenID,
		CustomerID:  customerID.Int64(),
		Name:        *abi.ConvertType(out[1], new(string)).(*string),
		DocumentRef: *abi.ConvertType(out[2], new(string)).(*string),
		Timestamp:   ts.Int64(),
	}

	var ownerOut []any
	if err := c.call(ctx, c.token, "ownerOf", &ownerOut, big.NewInt(tokenID)); err != nil {
		return nil, err
	}
	md.Owner = abi.ConvertType(ownerOut[0], new(common.Address)).(*common.Address).Hex()

	return md, nil
}
