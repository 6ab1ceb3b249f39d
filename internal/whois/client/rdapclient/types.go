package rdapclient

import "encoding/json"

// Domain is the subset of an RDAP domain object (RFC 9083) this service reads.
type Domain struct {
	ObjectClassName string       `json:"objectClassName"`
	Handle          string       `json:"handle"`
	LDHName         string       `json:"ldhName"`
	UnicodeName     string       `json:"unicodeName"`
	Status          []string     `json:"status"`
	Events          []Event      `json:"events"`
	Entities        []Entity     `json:"entities"`
	Nameservers     []Nameserver `json:"nameservers"`
	SecureDNS       *SecureDNS   `json:"secureDNS"`
	Port43          string       `json:"port43"`
	Links           []Link       `json:"links"`
}

type Event struct {
	Action string `json:"eventAction"`
	Date   string `json:"eventDate"`
}

type Entity struct {
	Handle     string          `json:"handle"`
	Roles      []string        `json:"roles"`
	VCardArray json.RawMessage `json:"vcardArray"`
	Entities   []Entity        `json:"entities"`
	Links      []Link          `json:"links"`
}

type Nameserver struct {
	LDHName string `json:"ldhName"`
}

type SecureDNS struct {
	DelegationSigned *bool `json:"delegationSigned"`
}

type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// EventDate returns the date of the first event with the given action.
func (d *Domain) EventDate(action string) string {
	for _, ev := range d.Events {
		if ev.Action == action {
			return ev.Date
		}
	}
	return ""
}

// EntityWithRole returns the first entity carrying role, searching nested
// entities as well.
func (d *Domain) EntityWithRole(role string) *Entity {
	return findEntity(d.Entities, role)
}

func findEntity(entities []Entity, role string) *Entity {
	for i := range entities {
		for _, r := range entities[i].Roles {
			if r == role {
				return &entities[i]
			}
		}
		if nested := findEntity(entities[i].Entities, role); nested != nil {
			return nested
		}
	}
	return nil
}

// VCard returns the text value of a vCard property such as "fn", "org" or "email".
// vcardArray is ["vcard", [[name, params, type, value], ...]].
func (e *Entity) VCard(property string) string {
	if len(e.VCardArray) == 0 {
		return ""
	}
	var card []json.RawMessage
	if err := json.Unmarshal(e.VCardArray, &card); err != nil || len(card) < 2 {
		return ""
	}
	var props [][]json.RawMessage
	if err := json.Unmarshal(card[1], &props); err != nil {
		return ""
	}
	for _, prop := range props {
		if len(prop) < 4 {
			continue
		}
		var name string
		if err := json.Unmarshal(prop[0], &name); err != nil || name != property {
			continue
		}
		var value string
		if err := json.Unmarshal(prop[3], &value); err == nil {
			return value
		}
		// structured values such as adr: take the last non-empty component
		var parts []any
		if err := json.Unmarshal(prop[3], &parts); err == nil {
			for i := len(parts) - 1; i >= 0; i-- {
				if s, ok := parts[i].(string); ok && s != "" {
					return s
				}
			}
		}
	}
	return ""
}

// Link returns the href of the first link with the given relation.
func (e *Entity) Link(rel string) string {
	for _, l := range e.Links {
		if l.Rel == rel {
			return l.Href
		}
	}
	return ""
}
