package barv1

import (
	"strings"
	"time"

	"github.com/muhammadchandra19/exchange/pkg/errors"
	"github.com/shopspring/decimal"
)

// Symbol identifies an instrument on a venue.
type Symbol struct {
	Code  string
	Venue string
}

// NewSymbol returns a Symbol with upper-cased code and venue.
func NewSymbol(code, venue string) Symbol {
	return Symbol{Code: strings.ToUpper(code), Venue: strings.ToUpper(venue)}
}

// ParseSymbol parses the CODE.VENUE form, e.g. AUDUSD.FXCM.
func ParseSymbol(s string) (Symbol, error) {
	idx := strings.LastIndex(s, ".")
	if idx <= 0 || idx == len(s)-1 {
		return Symbol{}, errors.Newf(errors.InvalidSymbolError, "symbol", "malformed symbol %q", s)
	}
	return NewSymbol(s[:idx], s[idx+1:]), nil
}

func (s Symbol) String() string {
	return s.Code + "." + s.Venue
}

// BarType is a BarSpecification applied to a symbol. It is the subscription key.
type BarType struct {
	Symbol        Symbol
	Specification BarSpecification
}

// ParseBarType parses the SYMBOL-SPECIFICATION form, e.g. AUDUSD.FXCM-1-MINUTE-BID.
func ParseBarType(s string) (BarType, error) {
	parts := strings.Split(s, "-")
	if len(parts) < 4 {
		return BarType{}, errors.Newf(errors.InvalidBarTypeError, "bar_type", "malformed bar type %q", s)
	}

	cut := len(parts) - 3
	symbol, err := ParseSymbol(strings.Join(parts[:cut], "-"))
	if err != nil {
		return BarType{}, err
	}

	spec, err := ParseBarSpecification(strings.Join(parts[cut:], "-"))
	if err != nil {
		return BarType{}, err
	}

	return BarType{Symbol: symbol, Specification: spec}, nil
}

func (b BarType) String() string {
	return b.Symbol.String() + "-" + b.Specification.String()
}

// Tick is a single bid/ask update for a symbol.
type Tick struct {
	Symbol    Symbol
	Bid       decimal.Decimal
	Ask       decimal.Decimal
	Timestamp time.Time
}

// Price returns the price a bar of the given quote type is built from.
func (t Tick) Price(quoteType QuoteType) decimal.Decimal {
	switch quoteType {
	case Ask:
		return t.Ask
	case Mid:
		return t.Bid.Add(t.Ask).Div(decimal.NewFromInt(2))
	default:
		return t.Bid
	}
}

// Spread returns ask minus bid.
func (t Tick) Spread() decimal.Decimal {
	return t.Ask.Sub(t.Bid)
}

// Bar is an immutable open/high/low/close/volume summary of one window.
// Volume is the number of ticks seen in the window.
type Bar struct {
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    int64           `json:"volume"`
	Timestamp time.Time       `json:"timestamp"`
}

func (b Bar) String() string {
	return strings.Join([]string{
		b.Open.String(),
		b.High.String(),
		b.Low.String(),
		b.Close.String(),
		decimal.NewFromInt(b.Volume).String(),
		b.Timestamp.UTC().Format(time.RFC3339Nano),
	}, ",")
}
