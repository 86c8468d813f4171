package pool

import (
	"github.com/shopspring/decimal"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
)

const (
	OperationDeposit  = "deposit"
	OperationSwap     = "swap"
	OperationWithdraw = "withdraw"
	OperationFund     = "fund"
)

type DepositRequest struct {
	Owner   string
	AssetX  string
	AmountX uint64
	AssetY  string
	AmountY uint64
}

func (r DepositRequest) validate() error {
	if len(r.Owner) <= 0 {
		return ErrMissingOwner
	}
	return nil
}

type SwapRequest struct {
	Owner       string
	InputAsset  string
	OutputAsset string
	Amount      uint64
}

func (r SwapRequest) validate() error {
	if len(r.Owner) <= 0 {
		return ErrMissingOwner
	}
	if r.Amount == 0 {
		return domain.ErrZeroAmount
	}
	return nil
}

type WithdrawRequest struct {
	Owner  string
	AssetX string
	AssetY string
}

func (r WithdrawRequest) validate() error {
	if len(r.Owner) <= 0 {
		return ErrMissingOwner
	}
	return nil
}

// DepositReceipt is the outcome of a committed deposit.
type DepositReceipt struct {
	ID           string
	Pool         domain.Pool
	Position     domain.Position
	Bootstrap    bool
	SharesIssued uint64
	Transfers    []domain.Transfer
}

// SwapReceipt is the outcome of a committed swap.
type SwapReceipt struct {
	ID          string
	Pool        domain.Pool
	InputAsset  string
	OutputAsset string
	AmountIn    uint64
	AmountOut   uint64
	Fee         uint64
	Transfers   []domain.Transfer
}

// WithdrawReceipt is the outcome of a committed withdrawal.
type WithdrawReceipt struct {
	ID             string
	Pool           domain.Pool
	SharesRedeemed uint64
	PayoutA        uint64
	RedeemedB      uint64
	RedeemedFee    uint64
	Transfers      []domain.Transfer
}

// SwapPreview is the quote of a swap not yet executed.
type SwapPreview struct {
	InputAsset  string
	OutputAsset string
	AmountIn    uint64
	AmountOut   uint64
	Fee         uint64
}

// PositionInfo is a position together with the fraction of the pool it
// owns.
type PositionInfo struct {
	domain.Position
	OwnedFraction decimal.Decimal
}
