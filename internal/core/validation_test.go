package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/tradeimport/internal/currency"
)

func TestValidatePair(t *testing.T) {
	tests := []struct {
		name        string
		base, quote currency.Currency
		wantErr     bool
	}{
		{name: "crypto against fiat", base: currency.BTC, quote: currency.CZK},
		{name: "crypto against stablecoin", base: currency.LTC, quote: currency.USDT},
		{name: "single currency", base: currency.BTC, quote: currency.BTC},
		{name: "fiat base", base: currency.USD, quote: currency.BTC, wantErr: true},
		{name: "quote outside quote set", base: currency.XMR, quote: currency.XRP, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePair(currency.Default, tt.base, tt.quote)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePair(%s/%s) error = %v, wantErr %v", tt.base, tt.quote, err, tt.wantErr)
			}
			var pairErr *CurrencyPairError
			if tt.wantErr && !errors.As(err, &pairErr) {
				t.Errorf("expected *CurrencyPairError, got %T", err)
			}
		})
	}

	err := ValidatePair(currency.Default, currency.XMR, currency.XRP)
	if want := "unsupported currency pair XMR/XRP"; err == nil || err.Error() != want {
		t.Errorf("message = %v, want %q", err, want)
	}
}

func TestValidatePositivity(t *testing.T) {
	ok := ValidatePositivity(
		Named("quantity", decimal.NewFromInt(1)),
		Named("price", decimal.Zero),
	)
	if ok != nil {
		t.Errorf("zero and positive values rejected: %v", ok)
	}

	err := ValidatePositivity(
		Named("quantity", decimal.NewFromInt(1)),
		Named("fee", decimal.RequireFromString("-0.5")),
		Named("rebate", decimal.NewFromInt(-2)),
	)
	var neg *NegativeValueError
	if !errors.As(err, &neg) {
		t.Fatalf("expected *NegativeValueError, got %v", err)
	}
	if neg.Field != "fee" {
		t.Errorf("Field = %s, want first negative field fee", neg.Field)
	}
}

func TestValidateNonZero(t *testing.T) {
	if err := ValidateNonZero("quantity", decimal.RequireFromString("0.0001")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := ValidateNonZero("quantity", decimal.RequireFromString("0.000"))
	if err == nil || err.Error() != "quantity can not be zero" {
		t.Errorf("error = %v, want quantity can not be zero", err)
	}
}

func TestValidateFeeRebateCurrency(t *testing.T) {
	if err := ValidateFeeRebateCurrency("fee", currency.LTC, currency.LTC, currency.USDT); err != nil {
		t.Errorf("base currency rejected: %v", err)
	}
	if err := ValidateFeeRebateCurrency("fee", currency.USDT, currency.LTC, currency.USDT); err != nil {
		t.Errorf("quote currency rejected: %v", err)
	}

	err := ValidateFeeRebateCurrency("fee", currency.ETH, currency.LTC, currency.USDT)
	for _, code := range []string{"ETH", "LTC", "USDT"} {
		if err == nil || !strings.Contains(err.Error(), code) {
			t.Errorf("error %v does not name %s", err, code)
		}
	}
}

func TestMatchHeader(t *testing.T) {
	schemas := []Schema{
		{Name: "en", Columns: []Column{{Name: "ID"}, {Name: "Date", Aliases: []string{"Datum"}}, {Name: "Type"}}},
		{Name: "legacy", Columns: []Column{{Name: "ID"}, {Name: "Date"}}},
	}

	tests := []struct {
		name       string
		header     []string
		wantSchema string
		wantErr    bool
	}{
		{name: "exact", header: []string{"ID", "Date", "Type"}, wantSchema: "en"},
		{name: "alias", header: []string{"ID", "Datum", "Type"}, wantSchema: "en"},
		{name: "BOM and whitespace", header: []string{"\uFEFFID", " Date ", "\uFEFFType"}, wantSchema: "en"},
		{name: "second layout", header: []string{"ID", "Date"}, wantSchema: "legacy"},
		{name: "renamed", header: []string{"ID", "Dates", "Type"}, wantErr: true},
		{name: "reordered", header: []string{"Date", "ID", "Type"}, wantErr: true},
		{name: "extra column", header: []string{"ID", "Date", "Type", "Note"}, wantErr: true},
		{name: "case differs", header: []string{"id", "date", "type"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MatchHeader("test", tt.header, schemas)
			if tt.wantErr {
				var schemaErr *SchemaError
				if !errors.As(err, &schemaErr) {
					t.Fatalf("expected *SchemaError, got %v", err)
				}
				if len(schemaErr.Expected) != len(schemas) {
					t.Errorf("Expected lists %d layouts, want %d", len(schemaErr.Expected), len(schemas))
				}
				return
			}
			if err != nil {
				t.Fatalf("MatchHeader error = %v", err)
			}
			if got.Name != tt.wantSchema {
				t.Errorf("schema = %s, want %s", got.Name, tt.wantSchema)
			}
		})
	}
}

func TestVocabulary_Classify(t *testing.T) {
	v := Vocabulary{"BUY": KindBuy, "QUICK_SELL": KindSell}

	if k, err := v.Classify("QUICK_SELL"); err != nil || k != KindSell {
		t.Errorf("Classify(QUICK_SELL) = %s, %v", k, err)
	}

	_, err := v.Classify("buy")
	var unsupported *UnsupportedError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected *UnsupportedError for lower case, got %v", err)
	}
	if !strings.Contains(err.Error(), `"buy"`) {
		t.Errorf("message %q does not quote the literal", err.Error())
	}
	if ClassifyError(err) != ProblemIgnored {
		t.Errorf("unsupported action should be ignored")
	}
}
