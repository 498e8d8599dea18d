package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iwvelando/amortization-compare/internal/simulation"
	"github.com/iwvelando/amortization-compare/pkg/amortization"
	"github.com/iwvelando/amortization-compare/pkg/constants"
	"github.com/iwvelando/amortization-compare/pkg/finance"
	"github.com/iwvelando/amortization-compare/pkg/format"
	"github.com/iwvelando/amortization-compare/pkg/testutil"
	"gopkg.in/yaml.v3"
)

func mortgageResult() simulation.Result {
	return simulation.Simulate(nil, testutil.MortgageParameters(), testutil.TypicalFees(), 8000)
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, mortgageResult(), 3); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"--- Loan ---",
		"$200,000.00",
		"--- SAC ledger ---",
		"--- PRICE ledger ---",
		"354 months omitted",
		"--- Comparison ---",
		"Effective cost (year)",
		"--- Recommendation ---",
		"Recommended: SAC (SAC 5, PRICE 1)",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("PrettyFormat output missing %q", want)
		}
	}
	if strings.Contains(output, "tie resolved") {
		t.Error("PrettyFormat reported a tie for an outright win")
	}
}

func TestPrettyFormatFullLedger(t *testing.T) {
	result := simulation.Simulate(nil, testutil.ShortLoanParameters(), finance.Fees{}, 0)
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, result, 0); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	output := buf.String()
	if strings.Contains(output, "omitted") {
		t.Error("PrettyFormat should print every row when excerptRows is 0")
	}
	if strings.Contains(output, "Income commitment") {
		t.Error("PrettyFormat should skip affordability without income")
	}
}

func TestPrettyFormatUnavailableEffectiveCost(t *testing.T) {
	params := testutil.ShortLoanParameters()
	result := simulation.Simulate(nil, params, finance.Fees{Origination: params.Principal}, 0)
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, result, 0); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	if !strings.Contains(buf.String(), format.NotAvailable) {
		t.Error("PrettyFormat should show n/a for an uncomputable effective cost")
	}
}

func TestCsvFormat(t *testing.T) {
	result := simulation.Simulate(nil, testutil.ShortLoanParameters(), finance.Fees{}, 0)
	var buf bytes.Buffer
	if err := CsvFormat(&buf, result); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("CsvFormat produced unreadable CSV: %v", err)
	}
	if len(records) != 1+12+12 {
		t.Fatalf("expected header plus 24 rows, got %d", len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(csvHeader, ",") {
		t.Errorf("unexpected header %v", records[0])
	}
	if records[1][0] != "SAC" || records[1][1] != "1" {
		t.Errorf("first row should be SAC month 1, got %v", records[1][:2])
	}
	if records[13][0] != "PRICE" {
		t.Errorf("row 13 should start the PRICE ledger, got %v", records[13][0])
	}
	// SAC month 1: 1000 principal plus 1% of 12000.
	if records[1][2] != "1120.00" {
		t.Errorf("expected SAC first installment 1120.00, got %s", records[1][2])
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONFormat(&buf, mortgageResult()); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("JSONFormat produced invalid JSON: %v", err)
	}
	for _, key := range []string{"parameters", "sac", "price", "recommendation"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("JSON output missing %q", key)
		}
	}
}

func TestYAMLFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := YAMLFormat(&buf, mortgageResult()); err != nil {
		t.Fatalf("YAMLFormat() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("YAMLFormat produced invalid YAML: %v", err)
	}
	rec, ok := decoded["recommendation"].(map[string]interface{})
	if !ok {
		t.Fatal("YAML output missing recommendation")
	}
	if rec["winner"] != "SAC" {
		t.Errorf("expected winner SAC, got %v", rec["winner"])
	}
}

func TestWrite(t *testing.T) {
	result := simulation.Simulate(nil, testutil.ShortLoanParameters(), finance.Fees{}, 0)
	for _, outputFormat := range []string{
		constants.OutputFormatPretty,
		constants.OutputFormatCSV,
		constants.OutputFormatJSON,
		constants.OutputFormatYAML,
		constants.OutputFormatReport,
	} {
		t.Run(outputFormat, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, outputFormat, result, constants.DefaultExcerptRows); err != nil {
				t.Fatalf("Write(%s) error = %v", outputFormat, err)
			}
			if buf.Len() == 0 {
				t.Errorf("Write(%s) produced no output", outputFormat)
			}
		})
	}

	if err := Write(&bytes.Buffer{}, "xml", result, 0); err == nil {
		t.Error("Write() expected error for unsupported format")
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	if err := Report(&buf, mortgageResult()); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	lines := testutil.NonEmptyLines(buf.String())

	for _, want := range []string{
		"AMORTIZATION REPORT - SAC vs PRICE",
		"Principal: $200,000.00",
		"Installments: 360",
		"Rate: 0.80% per month",
		"RECOMMENDED: SAC (SAC 5, PRICE 1)",
	} {
		found := false
		for _, line := range lines {
			if line == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Report missing line %q", want)
		}
	}

	var sacLine string
	for _, line := range lines {
		if strings.HasPrefix(line, string(amortization.SAC)+" - Total:") {
			sacLine = line
		}
	}
	if sacLine == "" || strings.Contains(sacLine, format.NotAvailable) {
		t.Errorf("expected a SAC line with an effective cost, got %q", sacLine)
	}
}

func TestReportUnavailableEffectiveCost(t *testing.T) {
	params := testutil.ShortLoanParameters()
	result := simulation.Simulate(nil, params, finance.Fees{Origination: 20000}, 0)
	var buf bytes.Buffer
	if err := Report(&buf, result); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if strings.Count(buf.String(), "Annual effective cost: "+format.NotAvailable) != 2 {
		t.Errorf("expected n/a effective cost for both methods:\n%s", buf.String())
	}
}
