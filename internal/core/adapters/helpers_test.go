package adapters

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/tradeimport/internal/core"
	"github.com/JonMunkholm/tradeimport/internal/currency"
)

func newImporter(a core.Adapter) *core.Importer {
	return core.NewImporter(a, core.DefaultEnv(), core.WithLogger(slog.New(slog.DiscardHandler)))
}

func importCSV(t *testing.T, a core.Adapter, text string) *core.Result {
	t.Helper()
	res, err := newImporter(a).Parse(context.Background(), strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return res
}

func onlyCluster(t *testing.T, res *core.Result) *core.Cluster {
	t.Helper()
	if len(res.Problems) != 0 {
		t.Fatalf("unexpected problems: %+v", res.Problems)
	}
	if len(res.Clusters) != 1 {
		t.Fatalf("got %d clusters, want 1", len(res.Clusters))
	}
	return res.Clusters[0].Cluster
}

func onlyProblem(t *testing.T, res *core.Result) core.Problem {
	t.Helper()
	if len(res.Clusters) != 0 {
		t.Fatalf("unexpected clusters: %+v", res.Clusters)
	}
	if len(res.Problems) != 1 {
		t.Fatalf("got %d problems, want 1", len(res.Problems))
	}
	return res.Problems[0]
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func utc(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

type wantMeta struct {
	uid      string
	executed string
	base     currency.Currency
	quote    currency.Currency
	kind     core.Kind
}

func checkMeta(t *testing.T, got core.TxMeta, want wantMeta) {
	t.Helper()
	if got.UID != want.uid {
		t.Errorf("UID = %q, want %q", got.UID, want.uid)
	}
	if want.executed != "" && !got.Executed.Equal(utc(want.executed)) {
		t.Errorf("Executed = %v, want %s", got.Executed, want.executed)
	}
	if got.Base != want.base || got.Quote != want.quote {
		t.Errorf("pair = %s/%s, want %s/%s", got.Base, got.Quote, want.base, want.quote)
	}
	if got.Kind != want.kind {
		t.Errorf("Kind = %s, want %s", got.Kind, want.kind)
	}
}

func checkBuySell(t *testing.T, tx core.Transaction, meta wantMeta, qty, price string) {
	t.Helper()
	bs, ok := tx.(core.BuySell)
	if !ok {
		t.Fatalf("main is %T, want core.BuySell", tx)
	}
	checkMeta(t, bs.TxMeta, meta)
	if !bs.Quantity.Equal(d(qty)) {
		t.Errorf("Quantity = %s, want %s", bs.Quantity, qty)
	}
	if !bs.UnitPrice.Equal(d(price)) {
		t.Errorf("UnitPrice = %s, want %s", bs.UnitPrice, price)
	}
}

func checkFeeRebate(t *testing.T, tx core.Transaction, meta wantMeta, amount string, cur currency.Currency) {
	t.Helper()
	fr, ok := tx.(core.FeeRebate)
	if !ok {
		t.Fatalf("transaction is %T, want core.FeeRebate", tx)
	}
	checkMeta(t, fr.TxMeta, meta)
	if !fr.Amount.Equal(d(amount)) {
		t.Errorf("Amount = %s, want %s", fr.Amount, amount)
	}
	if fr.AmountCurrency != cur {
		t.Errorf("AmountCurrency = %s, want %s", fr.AmountCurrency, cur)
	}
}

func expectProblem(t *testing.T, p core.Problem, kind core.ProblemKind, code, fragment string) {
	t.Helper()
	if p.Kind != kind {
		t.Errorf("Kind = %s, want %s (%s)", p.Kind, kind, p.Message)
	}
	if code != "" && p.Code != code {
		t.Errorf("Code = %s, want %s (%s)", p.Code, code, p.Message)
	}
	if !strings.Contains(p.Message, fragment) {
		t.Errorf("Message = %q, want it to contain %q", p.Message, fragment)
	}
}
