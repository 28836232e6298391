package viewer

// Event is the payload the delivery network sends for a viewer-request
// edge invocation.
type Event struct {
	Records []Record `json:"Records"`
}

type Record struct {
	CF CloudFront `json:"cf"`
}

type CloudFront struct {
	Config  Config  `json:"config"`
	Request Request `json:"request"`
}

type Config struct {
	DistributionDomainName string `json:"distributionDomainName,omitempty"`
	DistributionID         string `json:"distributionId,omitempty"`
	EventType              string `json:"eventType,omitempty"`
	RequestID              string `json:"requestId,omitempty"`
}

// Request is the request record. Handlers return it with only URI changed.
type Request struct {
	ClientIP    string  `json:"clientIp,omitempty"`
	Headers     Headers `json:"headers"`
	Method      string  `json:"method,omitempty"`
	QueryString string  `json:"querystring"`
	URI         string  `json:"uri"`
}

// Headers is keyed by lowercase header name.
type Headers map[string][]Header

type Header struct {
	Key   string `json:"key,omitempty"`
	Value string `json:"value"`
}

// Host returns the first host header value.
func (r Request) Host() (string, bool) {
	values := r.Headers["host"]
	if len(values) == 0 {
		return "", false
	}
	return values[0].Value, true
}
