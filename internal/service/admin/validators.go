package admin

import "strings"

const minPasswordLen = 6

func isValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	if strings.ContainsAny(email, " \t\n") {
		return false
	}

	domain := email[at+1:]
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

func isValidPassword(password string) bool {
	return len(password) >= minPasswordLen
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
