// Package catalog defines the static registry of experiment parameters and
// prompt variants. The registry is immutable process-wide read-only state;
// every other package treats it as pure data.
package catalog

import (
	"fmt"
	"strconv"
)

// Parameter describes one business-configuration parameter that trials can
// vary. Values are either string or int; Default must appear in Values.
type Parameter struct {
	Name        string
	Placeholder string // template placeholder key, e.g. "ClientName"
	Values      []any
	Default     any
}

// Variant describes one legal/organizational framing of the fee-proposal
// prompt. TemplateKey identifies the template inside fee_proposal.json.
type Variant struct {
	Name        string
	TemplateKey string
}

// parameters lists every catalog parameter in canonical order. Parameters the
// reference experiments never varied carry a single candidate equal to their
// default, so the default-in-candidates invariant holds for all entries.
var parameters = []Parameter{
	{
		Name:        "business_type",
		Placeholder: "BusinessType",
		Values:      []any{"marketing consultant for small businesses in the US"},
		Default:     "marketing consultant for small businesses in the US",
	},
	{
		Name:        "clients_per_month",
		Placeholder: "ClientsPerMonth",
		Values:      []any{10, 20, 50, 100},
		Default:     20,
	},
	{
		Name:        "average_contract_value",
		Placeholder: "AverageContractValue",
		Values:      []any{100, 200, 500, 1000, 5000},
		Default:     200,
	},
	{
		Name:        "additional_clients_from_software",
		Placeholder: "AdditionalClients",
		Values:      []any{1},
		Default:     1,
	},
	{
		Name:        "admin_time_percentage",
		Placeholder: "AdminTimePercentage",
		Values:      []any{10},
		Default:     10,
	},
	{
		Name:        "client_name",
		Placeholder: "ClientName",
		Values: []any{
			"Jane Doe",
			"John Smith",
			"Maria Garcia",
			"Jamal Washington",
			"Priya Patel",
			"Wei Chen",
			"Fatima Al-Rahman",
		},
		Default: "Jane Doe",
	},
	{
		Name:        "agent_name",
		Placeholder: "AgentName",
		Values: []any{
			"NegotiationAgentZero",
			"AI-Assistant-v2",
			"SmartContract-Bot",
			"AutoNegotiator",
			"Sarah",
			"Michael",
			"Emma Thompson",
			"David Martinez",
		},
		Default: "NegotiationAgentZero",
	},
	{
		Name:        "vendor_name",
		Placeholder: "VendorName",
		Values: []any{
			"John Smith",
			"Emily Johnson",
			"Carlos Rodriguez",
			"Aisha Williams",
			"Raj Kapoor",
			"Li Wang",
			"Mohammed Hassan",
			"Taylor Brooks",
		},
		Default: "John Smith",
	},
	{
		Name:        "software_type",
		Placeholder: "SoftwareType",
		Values: []any{
			"CRM software",
			"project management software",
			"accounting software",
			"marketing automation software",
			"sales analytics software",
			"customer service platform",
		},
		Default: "CRM software",
	},
}

// variants lists every prompt variant in canonical order.
var variants = []Variant{
	{Name: "self_no_law", TemplateKey: "self-no-law"},
	{Name: "self_with_personhood", TemplateKey: "self-with-personhood"},
	{Name: "on_behalf_human", TemplateKey: "on-behalf-human"},
	{Name: "on_behalf_human_with_personhood", TemplateKey: "on-behalf-human-with-personhood"},
	{Name: "on_behalf_human_company", TemplateKey: "on-behalf-human-company"},
	{Name: "on_behalf_agent_company", TemplateKey: "on-behalf-agent-company"},
}

// Parameters returns all catalog parameters in canonical order.
// The returned slice must not be modified.
func Parameters() []Parameter {
	return parameters
}

// Variants returns all prompt variants in canonical order.
func Variants() []Variant {
	return variants
}

// LookupParameter returns the parameter with the given name.
func LookupParameter(name string) (Parameter, bool) {
	for _, p := range parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// LookupVariant returns the variant with the given name.
func LookupVariant(name string) (Variant, bool) {
	for _, v := range variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// ParameterNames returns every parameter name in canonical order.
func ParameterNames() []string {
	names := make([]string, len(parameters))
	for i, p := range parameters {
		names[i] = p.Name
	}
	return names
}

// VariantNames returns every variant name in canonical order.
func VariantNames() []string {
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.Name
	}
	return names
}

// DefaultConfig returns a fresh configuration mapping every parameter to its
// default value.
func DefaultConfig() map[string]any {
	config := make(map[string]any, len(parameters))
	for _, p := range parameters {
		config[p.Name] = p.Default
	}
	return config
}

// FormatValue renders a parameter value as its natural textual
// representation: integers without decimal points, strings verbatim.
func FormatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
