package report

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/splitnest/splitnest/internal/models"
	"github.com/splitnest/splitnest/internal/storage"
)

func entry(description, share, payerName string) storage.UserShare {
	return storage.UserShare{
		Expense: models.Expense{Description: description, PaidByID: "payer-id"},
		Share:   models.ExpenseShare{Share: decimal.RequireFromString(share)},
		PaidBy:  &models.User{ID: "payer-id", Name: payerName},
	}
}

func TestBuild(t *testing.T) {
	entries := []storage.UserShare{
		entry("Dinner", "33.34", "Farah"),
		entry("Taxi", "15", "Gita"),
		entry("Rent", "500", "Farah"),
	}

	lines := Build(entries)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}

	want := []Line{
		{Description: "Dinner", Owed: "33.34", PayerName: "Farah"},
		{Description: "Taxi", Owed: "15.00", PayerName: "Gita"},
		{Description: "Rent", Owed: "500.00", PayerName: "Farah"},
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line[%d] = %+v, want %+v", i, lines[i], want[i])
		}
	}
}

func TestBuild_FallsBackToPayerID(t *testing.T) {
	entries := []storage.UserShare{
		{
			Expense: models.Expense{Description: "Dinner", PaidByID: "payer-id"},
			Share:   models.ExpenseShare{Share: decimal.RequireFromString("10")},
		},
	}

	lines := Build(entries)
	if lines[0].PayerName != "payer-id" {
		t.Errorf("PayerName = %q, want payer-id fallback", lines[0].PayerName)
	}
}

func TestBuild_Empty(t *testing.T) {
	if lines := Build(nil); len(lines) != 0 {
		t.Errorf("expected no lines, got %d", len(lines))
	}
}

func TestTextSink_Render(t *testing.T) {
	lines := Build([]storage.UserShare{entry("Dinner", "33.34", "Farah")})

	var buf strings.Builder
	if err := (TextSink{}).Render(&buf, "Balance Sheet", lines); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "Balance Sheet\n") {
		t.Errorf("missing title, got %q", out)
	}
	for _, want := range []string{"Expense: Dinner", "Amount: 33.34", "Paid by: Farah"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
