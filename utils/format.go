package utils

import (
	"fmt"
	"strings"
	"unicode"
)

// onlyDigits strips everything that is not a decimal digit
func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatarTelefone formats a Brazilian phone number for display:
// (XX) XXXXX-XXXX for mobile, (XX) XXXX-XXXX for landline. Inputs that do
// not match either length are returned unchanged.
func FormatarTelefone(telefone string) string {
	digits := onlyDigits(telefone)
	switch len(digits) {
	case 11:
		return fmt.Sprintf("(%s) %s-%s", digits[:2], digits[2:7], digits[7:])
	case 10:
		return fmt.Sprintf("(%s) %s-%s", digits[:2], digits[2:6], digits[6:])
	default:
		return telefone
	}
}

// FormatarCPF formats a CPF as XXX.XXX.XXX-XX
func FormatarCPF(cpf string) string {
	digits := onlyDigits(cpf)
	if len(digits) != 11 {
		return cpf
	}
	return fmt.Sprintf("%s.%s.%s-%s", digits[:3], digits[3:6], digits[6:9], digits[9:])
}

// FormatarCEP formats a CEP as XXXXX-XXX
func FormatarCEP(cep string) string {
	digits := onlyDigits(cep)
	if len(digits) != 8 {
		return cep
	}
	return fmt.Sprintf("%s-%s", digits[:5], digits[5:])
}
