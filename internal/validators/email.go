package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid vérifie que le domaine de l'adresse est joignable :
// un enregistrement MX, ou à défaut une résolution A/AAAA, suffit. Le
// format local de l'adresse n'est pas contrôlé ici.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}
	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}
