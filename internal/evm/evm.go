// Package evm implements the Earned Value Management calculations the bot
// exposes through /calc and the HTTP API. All functions are pure.
package evm

import (
	"fmt"
	"strings"
)

// Inputs are the per-request figures. BAC is optional; nil means not supplied.
// Values are taken as-is: negative figures flow through the formulas unvalidated.
type Inputs struct {
	PV  float64
	EV  float64
	AC  float64
	BAC *float64
}

// Result holds the computed indices. A nil field means the index is undefined
// for these inputs ("n/a"), never an error.
type Result struct {
	SPI *float64
	CPI *float64
	EAC *float64
}

// Calc computes SPI, CPI and EAC from the given inputs.
//
//	SPI = EV/PV            (undefined when PV == 0)
//	CPI = EV/AC            (undefined when AC == 0)
//	EAC = AC + (BAC-EV)/CPI (requires BAC and a defined, non-zero CPI)
func Calc(in Inputs) Result {
	var res Result
	if in.PV != 0 {
		spi := in.EV / in.PV
		res.SPI = &spi
	}
	if in.AC != 0 {
		cpi := in.EV / in.AC
		res.CPI = &cpi
	}
	if in.BAC != nil && res.CPI != nil && *res.CPI != 0 {
		cpi := *res.CPI
		eac := in.AC + (*in.BAC-in.EV)/cpi
		res.EAC = &eac
	}
	return res
}

// FormatReport renders a human-readable report: raw inputs on the first line,
// then each index or "n/a".
func FormatReport(in Inputs, res Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "PV=%s, EV=%s, AC=%s", formatAmount(in.PV), formatAmount(in.EV), formatAmount(in.AC))
	if in.BAC != nil {
		fmt.Fprintf(&b, ", BAC=%s", formatAmount(*in.BAC))
	}
	b.WriteString("\nSPI = EV/PV = ")
	b.WriteString(formatIndex(res.SPI))
	b.WriteString("\nCPI = EV/AC = ")
	b.WriteString(formatIndex(res.CPI))
	if in.BAC != nil && res.EAC != nil {
		fmt.Fprintf(&b, "\nEAC ≈ %s", formatAmount(*res.EAC))
	}
	return b.String()
}

func formatIndex(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}

// formatAmount prints a monetary figure with thousands separators and no
// decimals, e.g. 200000 -> "200,000".
func formatAmount(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	out := b.String()
	if neg {
		return "-" + out
	}
	return out
}
