package ioc

import (
	"unicode"
	"unicode/utf8"
)

// BeanName returns the name a component is registered under: declared when
// it is non-empty, otherwise typeName with its first rune lower-cased.
//
//	BeanName("", "UserService")    // "userService"
//	BeanName("svc", "UserService") // "svc"
func BeanName(declared, typeName string) string {
	if declared != "" {
		return declared
	}
	return lowerFirst(typeName)
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	lower := unicode.ToLower(r)
	if lower == r {
		return s
	}
	return string(lower) + s[size:]
}
