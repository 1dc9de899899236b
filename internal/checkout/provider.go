package checkout

import "ms-checkout/internal/models"

// ProviderConfig is the static plugin descriptor the host platform
// reads when the payment provider is installed.
func ProviderConfig() models.ProviderConfig {
	return models.ProviderConfig{
		Title: "Ifthenpay Payments",
		PaymentMethods: []models.PaymentMethod{
			{
				HostedPage: models.HostedPage{
					Title:                         "Ifthenpay Payments",
					BillingAddressMandatoryFields: []string{"CITY"},
					Logos: models.MethodLogos{
						White: models.LogoSet{
							SVG: "https://static.live-ls.com/media/ifthenpay-white.svg",
							PNG: "https://static.live-ls.com/media/ifthenpay-white.png",
						},
						Colored: models.LogoSet{
							SVG: "https://static.live-ls.com/media/ifthenpay-colored.svg",
							PNG: "https://static.live-ls.com/media/ifthenpay-colored.png",
						},
					},
				},
			},
		},
		CredentialsFields: []models.CredentialField{
			{
				SimpleField: models.SimpleField{
					Name:  "ifthenpayApiKey",
					Label: "API Key for Ifthenpay",
				},
			},
		},
	}
}
