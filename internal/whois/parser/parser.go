// Package parser turns raw WHOIS text and RDAP domain objects into models.Record.
package parser

import (
	"errors"
	"fmt"
	"strings"

	whoisparser "github.com/likexian/whois-parser"

	"domainlookup/internal/whois/client/rdapclient"
	"domainlookup/internal/whois/models"
	platformstrings "domainlookup/pkg/platform/strings"
)

// ErrEmptyRDAP is returned when there is no RDAP object to convert.
var ErrEmptyRDAP = errors.New("parser: empty rdap domain")

// Parser is stateless and safe for concurrent use.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// ParseWhois parses raw WHOIS text. Registry answers such as "domain not
// found" come back as whoisparser sentinel errors.
func (p *Parser) ParseWhois(raw string) (*models.Record, error) {
	info, err := whoisparser.Parse(raw)
	if err != nil {
		return nil, err
	}
	if info.Domain == nil {
		return nil, fmt.Errorf("%w: no domain section", whoisparser.ErrDomainDataInvalid)
	}

	record := &models.Record{
		Domain:         strings.ToLower(info.Domain.Domain),
		WhoisServer:    info.Domain.WhoisServer,
		Status:         platformstrings.Compact(info.Domain.Status),
		NameServers:    platformstrings.CompactHosts(info.Domain.NameServers),
		DNSSEC:         info.Domain.DNSSec,
		CreatedDate:    info.Domain.CreatedDate,
		UpdatedDate:    info.Domain.UpdatedDate,
		ExpirationDate: info.Domain.ExpirationDate,
	}
	if info.Registrar != nil {
		record.Registrar = info.Registrar.Name
		record.RegistrarURL = info.Registrar.ReferralURL
	}
	if c := info.Registrant; c != nil {
		record.Registrant = contact(c.Name, c.Organization, c.Email, c.Country)
	}
	return record, nil
}

// ParseRDAP converts an RDAP domain object into the same record shape as WHOIS.
func (p *Parser) ParseRDAP(d *rdapclient.Domain) (*models.Record, error) {
	if d == nil {
		return nil, ErrEmptyRDAP
	}
	name := d.LDHName
	if name == "" {
		name = d.UnicodeName
	}
	if name == "" {
		return nil, ErrEmptyRDAP
	}

	record := &models.Record{
		Domain:         strings.ToLower(name),
		WhoisServer:    d.Port43,
		Status:         platformstrings.Compact(d.Status),
		CreatedDate:    d.EventDate("registration"),
		UpdatedDate:    d.EventDate("last changed"),
		ExpirationDate: d.EventDate("expiration"),
	}
	hosts := make([]string, 0, len(d.Nameservers))
	for _, ns := range d.Nameservers {
		hosts = append(hosts, ns.LDHName)
	}
	record.NameServers = platformstrings.CompactHosts(hosts)
	if d.SecureDNS != nil && d.SecureDNS.DelegationSigned != nil {
		record.DNSSEC = *d.SecureDNS.DelegationSigned
	}
	if registrar := d.EntityWithRole("registrar"); registrar != nil {
		record.Registrar = registrar.VCard("fn")
		record.RegistrarURL = registrar.Link("about")
	}
	if registrant := d.EntityWithRole("registrant"); registrant != nil {
		record.Registrant = contact(
			registrant.VCard("fn"),
			registrant.VCard("org"),
			registrant.VCard("email"),
			registrant.VCard("adr"),
		)
	}
	return record, nil
}

// contact returns nil when every field is empty, which is common for redacted data.
func contact(name, org, email, country string) *models.Contact {
	if name == "" && org == "" && email == "" && country == "" {
		return nil
	}
	return &models.Contact{
		Name:         name,
		Organization: org,
		Email:        email,
		Country:      country,
	}
}
