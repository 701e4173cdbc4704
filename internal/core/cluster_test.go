package core

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/tradeimport/internal/currency"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func tradeInput(kind Kind) ClusterInput {
	return ClusterInput{
		UID:      "t-1",
		Executed: time.Date(2020, 7, 31, 11, 32, 59, 0, time.UTC),
		Base:     currency.LTC,
		Quote:    currency.USDT,
		Kind:     kind,
		Quantity: dec("2"),
		Price:    dec("40"),
	}
}

func TestBuildCluster_BuySell(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ClusterInput)
		wantRelated []Kind
	}{
		{name: "no fee", mutate: func(in *ClusterInput) {}},
		{
			name: "fee only",
			mutate: func(in *ClusterInput) {
				in.Fee, in.FeeCurrency = dec("0.1"), currency.USDT
			},
			wantRelated: []Kind{KindFee},
		},
		{
			name: "fee before rebate",
			mutate: func(in *ClusterInput) {
				in.Fee, in.FeeCurrency = dec("0.1"), currency.LTC
				in.Rebate, in.RebateCurrency = dec("0.2"), currency.USDT
			},
			wantRelated: []Kind{KindFee, KindRebate},
		},
		{
			name: "zero amounts are omitted even without currency",
			mutate: func(in *ClusterInput) {
				in.Fee, in.Rebate = decimal.Zero, decimal.Zero
			},
		},
		{
			name:   "negative quantity becomes magnitude",
			mutate: func(in *ClusterInput) { in.Quantity = dec("-2") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tradeInput(KindSell)
			tt.mutate(&in)

			c, err := BuildCluster(in, BuildOptions{})
			if err != nil {
				t.Fatalf("BuildCluster error = %v", err)
			}
			bs, ok := c.Main.(BuySell)
			if !ok {
				t.Fatalf("main is %T", c.Main)
			}
			if bs.UID != "t-1" || !bs.Quantity.Equal(dec("2")) {
				t.Errorf("main = %+v", bs)
			}
			if len(c.Related) != len(tt.wantRelated) {
				t.Fatalf("got %d related, want %d", len(c.Related), len(tt.wantRelated))
			}
			for i, kind := range tt.wantRelated {
				meta := c.Related[i].Meta()
				if meta.Kind != kind {
					t.Errorf("related[%d] kind = %s, want %s", i, meta.Kind, kind)
				}
				if meta.UID != "t-1"+RelatedUIDSuffix {
					t.Errorf("related[%d] uid = %s", i, meta.UID)
				}
				if meta.Base != in.Base || meta.Quote != in.Quote || !meta.Executed.Equal(in.Executed) {
					t.Errorf("related[%d] meta %+v does not mirror main", i, meta)
				}
			}
		})
	}
}

func TestBuildCluster_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		in     ClusterInput
		target any
	}{
		{
			name:   "zero quantity",
			in:     func() ClusterInput { in := tradeInput(KindBuy); in.Quantity = decimal.Zero; return in }(),
			target: new(*ZeroValueError),
		},
		{
			name:   "zero price",
			in:     func() ClusterInput { in := tradeInput(KindBuy); in.Price = decimal.Zero; return in }(),
			target: new(*ZeroValueError),
		},
		{
			name: "fee currency outside pair",
			in: func() ClusterInput {
				in := tradeInput(KindBuy)
				in.Fee, in.FeeCurrency = dec("0.1"), currency.ETH
				return in
			}(),
			target: new(*CurrencyMembershipError),
		},
		{
			name: "rebate currency outside pair",
			in: func() ClusterInput {
				in := tradeInput(KindBuy)
				in.Rebate, in.RebateCurrency = dec("0.1"), currency.BTC
				return in
			}(),
			target: new(*CurrencyMembershipError),
		},
		{
			name:   "negative price",
			in:     func() ClusterInput { in := tradeInput(KindBuy); in.Price = dec("-40"); return in }(),
			target: new(*NegativeValueError),
		},
		{
			name: "negative fee",
			in: func() ClusterInput {
				in := tradeInput(KindSell)
				in.Fee, in.FeeCurrency = dec("-0.1"), currency.USDT
				return in
			}(),
			target: new(*NegativeValueError),
		},
		{
			name: "negative rebate on deposit",
			in: func() ClusterInput {
				in := tradeInput(KindDeposit)
				in.Rebate, in.RebateCurrency = dec("-0.1"), currency.LTC
				return in
			}(),
			target: new(*NegativeValueError),
		},
		{
			name: "negative standalone fee",
			in: func() ClusterInput {
				in := tradeInput(KindFee)
				in.Fee, in.FeeCurrency = dec("-1"), currency.USDT
				return in
			}(),
			target: new(*NegativeValueError),
		},
		{
			name:   "zero deposit",
			in:     func() ClusterInput { in := tradeInput(KindDeposit); in.Quantity = decimal.Zero; return in }(),
			target: new(*ZeroValueError),
		},
		{
			name:   "unknown kind is internal",
			in:     tradeInput(Kind("TRANSFER")),
			target: new(*InternalError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := BuildCluster(tt.in, BuildOptions{FeePolicy: FeeCurrencyStrict})
			if c != nil {
				t.Errorf("cluster = %+v, want nil", c)
			}
			if !errors.As(err, tt.target) {
				t.Errorf("error = %v (%T), want %T", err, err, tt.target)
			}
		})
	}
}

func TestBuildCluster_UnknownKindWrapsSentinel(t *testing.T) {
	_, err := BuildCluster(tradeInput(Kind("STAKE")), BuildOptions{})
	if !errors.Is(err, ErrUnreachableKind) {
		t.Errorf("error = %v, want ErrUnreachableKind", err)
	}
	if !IsFatal(err) {
		t.Error("internal error should be fatal")
	}
}

func TestBuildCluster_LenientFee(t *testing.T) {
	in := tradeInput(KindBuy)
	in.Fee, in.FeeCurrency = dec("1"), currency.EUR
	in.Rebate, in.RebateCurrency = dec("0.5"), currency.USDT

	c, err := BuildCluster(in, BuildOptions{FeePolicy: FeeCurrencyLenient})
	if err != nil {
		t.Fatalf("BuildCluster error = %v", err)
	}
	if c.IgnoredFee == nil || c.IgnoredFee.Code != IgnoredFeeCurrency {
		t.Fatalf("IgnoredFee = %+v", c.IgnoredFee)
	}
	if c.IgnoredFee.Reason != "Fee EUR currency is neither base or quote" {
		t.Errorf("Reason = %q", c.IgnoredFee.Reason)
	}
	if len(c.Related) != 1 || c.Related[0].Meta().Kind != KindRebate {
		t.Errorf("related = %+v, want only the rebate", c.Related)
	}

	in.FeeCurrency = ""
	c, err = BuildCluster(in, BuildOptions{FeePolicy: FeeCurrencyLenient})
	if err != nil {
		t.Fatalf("BuildCluster error = %v", err)
	}
	if c.IgnoredFee == nil || c.IgnoredFee.Reason != "Fee null currency is neither base or quote" {
		t.Errorf("IgnoredFee = %+v", c.IgnoredFee)
	}
}

func TestBuildCluster_StandaloneFeeRebate(t *testing.T) {
	for _, kind := range []Kind{KindFee, KindRebate} {
		t.Run(string(kind), func(t *testing.T) {
			in := tradeInput(kind)
			in.Quantity, in.Price = decimal.Zero, decimal.Zero
			in.Fee, in.FeeCurrency = dec("0.3"), currency.LTC
			in.Rebate, in.RebateCurrency = dec("0.4"), currency.USDT

			c, err := BuildCluster(in, BuildOptions{})
			if err != nil {
				t.Fatalf("BuildCluster error = %v", err)
			}
			fr, ok := c.Main.(FeeRebate)
			if !ok {
				t.Fatalf("main is %T", c.Main)
			}
			if fr.UID != "t-1" || fr.Kind != kind {
				t.Errorf("main = %+v", fr)
			}
			if len(c.Related) != 0 {
				t.Errorf("standalone %s has %d related", kind, len(c.Related))
			}
		})
	}
}

func TestRoundFee(t *testing.T) {
	tests := []struct{ in, want string }{
		{"0.05708940", "0.0570894"},
		{"0.157464608715", "0.1574646087"},
		{"0.00000000005", "0.0000000001"},
		{"1", "1"},
	}
	for _, tt := range tests {
		if got := RoundFee(dec(tt.in)); !got.Equal(dec(tt.want)) {
			t.Errorf("RoundFee(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
