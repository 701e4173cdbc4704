package core

// cluster.go expands one validated record into a transaction cluster.
//
// The builder dispatches on Kind:
//   - BUY/SELL: BuySell primary, then related fee and rebate
//   - DEPOSIT/WITHDRAWAL: DepositWithdrawal primary, then related fee and rebate
//   - FEE/REBATE: a single FeeRebate primary that keeps the row UID
//
// Related entries are emitted only for strictly positive amounts, fee first.
// A negative price, fee or rebate rejects the record; adapters that read
// magnitudes take the absolute value before building.

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/tradeimport/internal/currency"
)

// FeeCurrencyPolicy decides what happens to a related fee whose currency is
// neither the base nor the quote.
type FeeCurrencyPolicy int

const (
	// FeeCurrencyStrict rejects the record.
	FeeCurrencyStrict FeeCurrencyPolicy = iota
	// FeeCurrencyLenient drops the fee and annotates the cluster.
	FeeCurrencyLenient
)

// IgnoredFeeCurrency is the IgnoredFee code for a fee outside the pair.
const IgnoredFeeCurrency = 1

// BuildOptions configures BuildCluster.
type BuildOptions struct {
	FeePolicy FeeCurrencyPolicy
}

// ClusterInput holds the typed fields of one record.
type ClusterInput struct {
	UID      string
	Executed time.Time
	Base     currency.Currency
	Quote    currency.Currency
	Kind     Kind

	Quantity decimal.Decimal
	Price    decimal.Decimal

	Fee            decimal.Decimal
	FeeCurrency    currency.Currency
	Rebate         decimal.Decimal
	RebateCurrency currency.Currency

	AddressFrom string
	AddressTo   string
}

// RoundFee rounds a derived value to DecimalDigits, half up.
func RoundFee(d decimal.Decimal) decimal.Decimal {
	return d.Round(DecimalDigits)
}

// BuildCluster produces the cluster for in.
//
// Validation failures are returned as row-level errors. A kind outside the
// closed set yields an *InternalError.
func BuildCluster(in ClusterInput, opts BuildOptions) (*Cluster, error) {
	switch in.Kind {
	case KindBuy, KindSell:
		if err := ValidateNonZero("quantity", in.Quantity); err != nil {
			return nil, err
		}
		if err := ValidateNonZero("price", in.Price); err != nil {
			return nil, err
		}
		if err := ValidatePositivity(Named("price", in.Price)); err != nil {
			return nil, err
		}
		main := BuySell{
			TxMeta:    in.meta(in.UID, in.Kind),
			Quantity:  in.Quantity.Abs(),
			UnitPrice: in.Price,
		}
		return in.withRelated(main, opts)

	case KindDeposit, KindWithdrawal:
		if err := ValidateNonZero("quantity", in.Quantity); err != nil {
			return nil, err
		}
		address := in.AddressFrom
		if in.Kind == KindWithdrawal {
			address = in.AddressTo
		}
		main := DepositWithdrawal{
			TxMeta:   in.meta(in.UID, in.Kind),
			Quantity: in.Quantity.Abs(),
			Address:  address,
		}
		return in.withRelated(main, opts)

	case KindFee:
		fee, err := in.feeRebate(KindFee, in.UID)
		if err != nil {
			return nil, err
		}
		return &Cluster{Main: fee, Related: []Transaction{}}, nil

	case KindRebate:
		rebate, err := in.feeRebate(KindRebate, in.UID)
		if err != nil {
			return nil, err
		}
		return &Cluster{Main: rebate, Related: []Transaction{}}, nil

	default:
		return nil, &InternalError{Err: fmt.Errorf("%w: %q", ErrUnreachableKind, in.Kind)}
	}
}

func (in ClusterInput) meta(uid string, kind Kind) TxMeta {
	return TxMeta{
		UID:      uid,
		Executed: in.Executed,
		Base:     in.Base,
		Quote:    in.Quote,
		Kind:     kind,
	}
}

// withRelated attaches the fee and rebate entries to main.
func (in ClusterInput) withRelated(main Transaction, opts BuildOptions) (*Cluster, error) {
	cluster := &Cluster{Main: main, Related: []Transaction{}}
	relatedUID := in.UID + RelatedUIDSuffix

	if in.Fee.IsNegative() || in.Rebate.IsNegative() {
		return nil, ValidatePositivity(Named("fee", in.Fee), Named("rebate", in.Rebate))
	}

	if in.Fee.IsPositive() {
		fee, err := in.feeRebate(KindFee, relatedUID)
		switch {
		case err == nil:
			cluster.Related = append(cluster.Related, fee)
		case opts.FeePolicy == FeeCurrencyLenient && isMembershipError(err):
			cluster.IgnoredFee = &IgnoredFee{
				Code:   IgnoredFeeCurrency,
				Reason: fmt.Sprintf("Fee %s currency is neither base or quote", feeCode(in.FeeCurrency)),
			}
		default:
			return nil, err
		}
	}

	if in.Rebate.IsPositive() {
		rebate, err := in.feeRebate(KindRebate, relatedUID)
		if err != nil {
			return nil, err
		}
		cluster.Related = append(cluster.Related, rebate)
	}

	return cluster, nil
}

func (in ClusterInput) feeRebate(kind Kind, uid string) (FeeRebate, error) {
	amount, cur, role := in.Fee, in.FeeCurrency, "fee"
	if kind == KindRebate {
		amount, cur, role = in.Rebate, in.RebateCurrency, "rebate"
	}
	if err := ValidatePositivity(Named(role, amount)); err != nil {
		return FeeRebate{}, err
	}
	if err := ValidateFeeRebateCurrency(role, cur, in.Base, in.Quote); err != nil {
		return FeeRebate{}, err
	}
	return FeeRebate{
		TxMeta:         in.meta(uid, kind),
		Amount:         amount,
		AmountCurrency: cur,
	}, nil
}

func isMembershipError(err error) bool {
	var membership *CurrencyMembershipError
	return errors.As(err, &membership)
}

func feeCode(c currency.Currency) string {
	if c.IsZero() {
		return "null"
	}
	return c.Code()
}
