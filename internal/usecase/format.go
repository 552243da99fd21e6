package usecase

import (
	"regexp"
	"strings"
)

var nonDigit = regexp.MustCompile(`\D`)

func OnlyDigits(s string) string {
	return nonDigit.ReplaceAllString(s, "")
}

// NormalizePhone devolve só dígitos e prefixa 55 quando vier só DDD + número.
func NormalizePhone(phone string) string {
	d := OnlyDigits(phone)
	if len(d) == 10 || len(d) == 11 {
		return "55" + d
	}
	return d
}

// FormatPhone formata pelo total de dígitos; tamanhos desconhecidos voltam como vieram.
func FormatPhone(phone string) string {
	d := OnlyDigits(phone)
	switch len(d) {
	case 13:
		return "+" + d[:2] + " (" + d[2:4] + ") " + d[4:9] + "-" + d[9:]
	case 12:
		return "+" + d[:2] + " (" + d[2:4] + ") " + d[4:8] + "-" + d[8:]
	case 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	case 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	case 9:
		return d[:5] + "-" + d[5:]
	case 8:
		return d[:4] + "-" + d[4:]
	default:
		return phone
	}
}

func allSameDigit(d string) bool {
	return strings.Count(d, d[:1]) == len(d)
}

func checkDigit(d string, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += int(d[i]-'0') * w
	}
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

func IsValidCPF(cpf string) bool {
	d := OnlyDigits(cpf)
	if len(d) != 11 || allSameDigit(d) {
		return false
	}
	d1 := checkDigit(d, []int{10, 9, 8, 7, 6, 5, 4, 3, 2})
	d2 := checkDigit(d, []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2})
	return int(d[9]-'0') == d1 && int(d[10]-'0') == d2
}

func IsValidCNPJ(cnpj string) bool {
	d := OnlyDigits(cnpj)
	if len(d) != 14 || allSameDigit(d) {
		return false
	}
	d1 := checkDigit(d, []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2})
	d2 := checkDigit(d, []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2})
	return int(d[12]-'0') == d1 && int(d[13]-'0') == d2
}

// IsValidDocumento aceita CPF (11 dígitos) ou CNPJ (14).
func IsValidDocumento(doc string) bool {
	d := OnlyDigits(doc)
	switch len(d) {
	case 11:
		return IsValidCPF(d)
	case 14:
		return IsValidCNPJ(d)
	}
	return false
}

func FormatCPF(cpf string) string {
	d := OnlyDigits(cpf)
	if len(d) != 11 {
		return cpf
	}
	return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
}

func FormatCNPJ(cnpj string) string {
	d := OnlyDigits(cnpj)
	if len(d) != 14 {
		return cnpj
	}
	return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:]
}

func FormatDocumento(doc string) string {
	if len(OnlyDigits(doc)) == 14 {
		return FormatCNPJ(doc)
	}
	return FormatCPF(doc)
}
