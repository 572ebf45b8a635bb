//go:generate go run ../../tools/gen-env-doc/main.go
package config

import "fmt"

// Variable names under the BITPAY_ prefix.
const (
	APIKey      = "API_KEY"
	BaseURL     = "BASE_URL"
	HTTPTimeout = "HTTP_TIMEOUT"
	PluginInfo  = "PLUGIN_INFO"
	LogLevel    = "LOG_LEVEL"
)

const (
	DefaultBaseURL     = "https://bitpay.com/api/"
	DefaultHTTPTimeout = uint32(0)
	DefaultPluginInfo  = "GoLib"
	DefaultLogLevel    = uint32(4)
)

type EnvVar struct {
	Name        string // short name under the BITPAY_ prefix (e.g., "API_KEY")
	FullName    string // e.g., "BITPAY_API_KEY"
	Type        string // human-readable type
	Default     string // default value as a string ("" if none)
	Description string // one-liner for docs
	Notes       string // optional: constraints, examples, etc.
	Required    bool   // must be set, there is no usable default
	Example     string // sample value for the generated .env snippet
}

func EnvSpecs() []EnvVar {
	const P = envPrefix + "_"

	return []EnvVar{
		{
			Name:        APIKey,
			FullName:    P + APIKey,
			Type:        "string",
			Default:     "",
			Description: "BitPay API key",
			Notes:       "Issued from the merchant dashboard. Sent as HTTP Basic credentials.",
			Required:    true,
			Example:     "yourApiKeyFromTheDashboard",
		},
		{
			Name:        BaseURL,
			FullName:    P + BaseURL,
			Type:        "string (URL)",
			Default:     DefaultBaseURL,
			Description: "BitPay API base URL",
			Notes:       "Point it at https://test.bitpay.com/api/ to use the test network.",
			Example:     "https://test.bitpay.com/api/",
		},
		{
			Name:        HTTPTimeout,
			FullName:    P + HTTPTimeout,
			Type:        "uint32 (seconds)",
			Default:     fmt.Sprintf("%d", DefaultHTTPTimeout),
			Description: "HTTP timeout in seconds, 0 disables it",
			Notes:       "Requests can always be cancelled through their context.",
			Example:     "30",
		},
		{
			Name:        PluginInfo,
			FullName:    P + PluginInfo,
			Type:        "string",
			Default:     DefaultPluginInfo,
			Description: "Value of the X-BitPay-Plugin-Info header",
			Example:     "MyShop/1.2",
		},
		{
			Name:        LogLevel,
			FullName:    P + LogLevel,
			Type:        "uint32 (0–6)",
			Default:     fmt.Sprintf("%d", DefaultLogLevel),
			Description: "Log verbosity (higher = more verbose)",
			Notes:       "5 logs every request sent to BitPay.",
			Example:     "5",
		},
	}
}
