package models

// Payment-provider plugin configuration surfaced to the host platform
// when the plugin is installed.

type ProviderConfig struct {
	Title             string            `json:"title"`
	PaymentMethods    []PaymentMethod   `json:"paymentMethods"`
	CredentialsFields []CredentialField `json:"credentialsFields"`
}

type PaymentMethod struct {
	HostedPage HostedPage `json:"hostedPage"`
}

type HostedPage struct {
	Title                         string      `json:"title"`
	BillingAddressMandatoryFields []string    `json:"billingAddressMandatoryFields,omitempty"`
	Logos                         MethodLogos `json:"logos"`
}

type MethodLogos struct {
	White   LogoSet `json:"white"`
	Colored LogoSet `json:"colored"`
}

type LogoSet struct {
	SVG string `json:"svg"`
	PNG string `json:"png"`
}

type CredentialField struct {
	SimpleField SimpleField `json:"simpleField"`
}

type SimpleField struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}
