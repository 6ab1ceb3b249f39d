package models

// Source identifies which protocol produced a lookup result.
type Source string

const (
	SourceWhois Source = "whois"
	SourceRDAP  Source = "rdap"
)

// LookupResult is the normalized outcome of a single domain lookup.
// Exactly one of Result (Status=true) or Error (Status=false) is populated.
// Cached results always report Time as zero.
type LookupResult struct {
	Time   float64 `json:"time"`
	Status bool    `json:"status"`
	Cached bool    `json:"cached"`
	Source Source  `json:"source"`
	Result *Record `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// Record is the structured registration data extracted from a WHOIS or RDAP response.
// Dates are kept as reported by the registry.
type Record struct {
	Domain         string   `json:"domain"`
	Registrar      string   `json:"registrar,omitempty"`
	RegistrarURL   string   `json:"registrar_url,omitempty"`
	WhoisServer    string   `json:"whois_server,omitempty"`
	Status         []string `json:"status,omitempty"`
	NameServers    []string `json:"name_servers,omitempty"`
	DNSSEC         bool     `json:"dnssec"`
	CreatedDate    string   `json:"created_date,omitempty"`
	UpdatedDate    string   `json:"updated_date,omitempty"`
	ExpirationDate string   `json:"expiration_date,omitempty"`
	Registrant     *Contact `json:"registrant,omitempty"`
}

// Contact holds the subset of contact details worth surfacing.
type Contact struct {
	Name         string `json:"name,omitempty"`
	Organization string `json:"organization,omitempty"`
	Email        string `json:"email,omitempty"`
	Country      string `json:"country,omitempty"`
}
