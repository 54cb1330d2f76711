package locale

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type englishFormatter struct {
	tag     language.Tag
	printer *message.Printer
	layouts map[DateStyle]string
}

// NewUSFormatter formats the way en-US readers expect: "May 12, 2023", "$1,235".
func NewUSFormatter() Formatter {
	return newEnglishFormatter(language.AmericanEnglish, map[DateStyle]string{
		DateStyleShort:  "Jan 2",
		DateStyleMedium: "Jan 2, 2006",
		DateStyleLong:   "Monday, January 2, 2006",
	})
}

// NewGBFormatter formats the way en-GB readers expect: "12 May 2023", "£1,235".
func NewGBFormatter() Formatter {
	return newEnglishFormatter(language.BritishEnglish, map[DateStyle]string{
		DateStyleShort:  "2 Jan",
		DateStyleMedium: "2 Jan 2006",
		DateStyleLong:   "Monday 2 January 2006",
	})
}

func newEnglishFormatter(tag language.Tag, layouts map[DateStyle]string) *englishFormatter {
	return &englishFormatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
		layouts: layouts,
	}
}

func (f *englishFormatter) Tag() string {
	return f.tag.String()
}

func (f *englishFormatter) FormatDate(date time.Time, style DateStyle) string {
	layout, ok := f.layouts[style]
	if !ok {
		layout = f.layouts[DateStyleMedium]
	}
	return date.Format(layout)
}

func (f *englishFormatter) FormatCurrency(value float64, code string) (string, error) {
	if code == "" {
		code = DefaultCurrency
	}

	unit, err := currency.ParseISO(strings.ToUpper(code))
	if err != nil {
		return "", fmt.Errorf("currency %q: %w", code, domain.ErrUnsupportedCurrency)
	}
	symbol := f.printer.Sprint(currency.Symbol(unit))

	switch {
	case math.IsNaN(value):
		return symbol + "NaN", nil
	case math.IsInf(value, 1):
		return symbol + "∞", nil
	case math.IsInf(value, -1):
		return "-" + symbol + "∞", nil
	}

	rounded := decimal.NewFromFloat(value).Round(0)
	amount := f.printer.Sprintf("%d", rounded.Abs().IntPart())
	if rounded.IsNegative() {
		return "-" + symbol + amount, nil
	}
	return symbol + amount, nil
}
