package payroll

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode"

	"go-hrms/internal/salarystructure"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// formatAmount renders d with two decimals and comma thousand separators
// without going through float64.
func formatAmount(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// payslipLines lays out a slip as the text lines of a one page payslip.
func payslipLines(s SalarySlip) []string {
	period := time.Date(s.Year, time.Month(s.Month), 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
	lines := []string{
		"PAYSLIP " + strings.ToUpper(period),
		"",
		fmt.Sprintf("Employee      : %s (%s)", s.EmployeeName, s.EmployeeCode),
		fmt.Sprintf("Basic salary  : %s", formatAmount(s.BasicSalary)),
		"",
		"EARNINGS",
	}
	var deductions []string
	for _, it := range s.Items {
		line := fmt.Sprintf("  %-28s %18s", it.Name, formatAmount(it.Amount))
		if it.Category == salarystructure.CategoryDeductions {
			deductions = append(deductions, line)
			continue
		}
		lines = append(lines, line)
	}
	lines = append(lines, fmt.Sprintf("  %-28s %18s", "Total earnings", formatAmount(s.TotalEarnings)), "", "DEDUCTIONS")
	lines = append(lines, deductions...)
	lines = append(lines,
		fmt.Sprintf("  %-28s %18s", "Total deductions", formatAmount(s.TotalDeductions)),
		fmt.Sprintf("  %-28s %18s", fmt.Sprintf("Leave (%d of %d days)", s.LeaveDays, s.WorkingDays), formatAmount(s.LeaveDeduction)),
		"",
		fmt.Sprintf("NET SALARY %36s", formatAmount(s.NetSalary)),
	)
	if s.Remarks != "" {
		lines = append(lines, "", "Remarks: "+s.Remarks)
	}
	return lines
}

func payslipFileName(s SalarySlip) string {
	code := s.EmployeeCode
	if code == "" {
		code = s.EmployeeID.String()
	}
	return fmt.Sprintf("payslip-%s-%04d-%02d.pdf", code, s.Year, s.Month)
}

func payslipKey(s SalarySlip) string {
	return fmt.Sprintf("payslips/%04d/%02d/%s.pdf", s.Year, s.Month, s.ID)
}

func renderPayslip(s SalarySlip) ([]byte, error) {
	return buildSimplePDF(payslipLines(s))
}

// buildSimplePDF writes a single page PDF with one Courier text line per entry.
func buildSimplePDF(lines []string) ([]byte, error) {
	if len(lines) == 0 {
		lines = []string{"Payslip"}
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 10 Tf\n14 TL\n50 800 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Courier >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

var pdfEscaper = strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")

// pdfEscape prepares v for a Courier text string. Accents are stripped
// ("Zoë" becomes "Zoe") and anything left outside printable ASCII becomes '?'.
func pdfEscape(v string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, v); err == nil {
		v = folded
	}
	v = strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7E {
			return '?'
		}
		return r
	}, v)
	return pdfEscaper.Replace(v)
}
