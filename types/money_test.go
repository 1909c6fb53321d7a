package types

import "testing"

func TestParseMajor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Money
		wantErr bool
	}{
		{"TwoDecimals", "5.50", Cents(550), false},
		{"NoDecimals", "12", Cents(1200), false},
		{"OneDecimal", "1.5", Cents(150), false},
		{"Zero", "0", Cents(0), false},
		{"Negative", "-4.25", Cents(-425), false},
		{"TrailingZeros", "3.00", Cents(300), false},
		{"ThreeDecimals", "1.999", 0, true},
		{"NotANumber", "latte", 0, true},
		{"Empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMajor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       func() Money
		expected Money
	}{
		{"Add", func() Money { return Cents(100).Add(Cents(200)) }, Cents(300)},
		{"Subtract", func() Money { return Cents(500).Subtract(Cents(200)) }, Cents(300)},
		{"MultiplyQty", func() Money { return Cents(550).MultiplyQty(2) }, Cents(1100)},
		{"Negate", func() Money { return Cents(100).Negate() }, Cents(-100)},
		{"ClampZeroNegative", func() Money { return Cents(-500).ClampZero() }, Cents(0)},
		{"ClampZeroPositive", func() Money { return Cents(500).ClampZero() }, Cents(500)},
		{"Sum", func() Money { return SumMoney(Cents(100), Cents(200), Cents(300)) }, Cents(600)},
		{"SumEmpty", func() Money { return SumMoney() }, Cents(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.op(); got != tt.expected {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMoneyFormatting(t *testing.T) {
	tests := []struct {
		name    string
		money   Money
		major   string
		display string
	}{
		{"Whole", Cents(1200), "12.00", "$12.00"},
		{"Fraction", Cents(550), "5.50", "$5.50"},
		{"SubDollar", Cents(5), "0.05", "$0.05"},
		{"Zero", Cents(0), "0.00", "$0.00"},
		{"Negative", Cents(-500), "-5.00", "-$5.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.money.FormatMajor(); got != tt.major {
				t.Errorf("FormatMajor: got %s, want %s", got, tt.major)
			}
			if got := tt.money.String(); got != tt.display {
				t.Errorf("String: got %s, want %s", got, tt.display)
			}
		})
	}
}

func TestMoneyComparison(t *testing.T) {
	if !Cents(50).LessThan(Cents(100)) {
		t.Error("expected 50 < 100")
	}
	if !Cents(100).GreaterThan(Cents(50)) {
		t.Error("expected 100 > 50")
	}
	if !Cents(-1).IsNegative() || Cents(1).IsNegative() {
		t.Error("IsNegative misclassified")
	}
	if !Cents(0).IsZero() || !Cents(1).IsPositive() {
		t.Error("IsZero/IsPositive misclassified")
	}
}
