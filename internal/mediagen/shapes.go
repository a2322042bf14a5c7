package mediagen

import (
	"encoding/json"
	"fmt"
)

// The provider answers a submission with one of several success shapes:
// a direct url, an array of urls, an array of images, or a request id that
// must be polled. Decoding classifies the payload explicitly instead of
// probing optional fields at every call site.
type submissionKind int

const (
	shapeUnknown submissionKind = iota
	shapeDirectURL
	shapeURLList
	shapeRequestID
)

type submission struct {
	kind      submissionKind
	url       string
	urls      []string
	requestID string
}

// rawSubmission is the superset of fields observed across the provider's
// success variants.
type rawSubmission struct {
	URL       string   `json:"url"`
	URLs      []string `json:"urls"`
	Images    []string `json:"images"`
	RequestID string   `json:"request_id"`
	ID        string   `json:"id"`
}

func decodeSubmission(body []byte) (submission, error) {
	var raw rawSubmission
	if err := json.Unmarshal(body, &raw); err != nil {
		return submission{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	switch {
	case raw.URL != "":
		return submission{kind: shapeDirectURL, url: raw.URL}, nil
	case len(raw.URLs) > 0:
		return submission{kind: shapeURLList, urls: raw.URLs}, nil
	case len(raw.Images) > 0:
		return submission{kind: shapeURLList, urls: raw.Images}, nil
	case raw.RequestID != "":
		return submission{kind: shapeRequestID, requestID: raw.RequestID}, nil
	case raw.ID != "":
		return submission{kind: shapeRequestID, requestID: raw.ID}, nil
	default:
		return submission{kind: shapeUnknown}, nil
	}
}

// statusResponse is one poll answer. The asset may arrive under any of the
// same aliases the submission uses.
type statusResponse struct {
	Status string   `json:"status"`
	Error  string   `json:"error"`
	URL    string   `json:"url"`
	URLs   []string `json:"urls"`
	Images []string `json:"images"`
}

func (s statusResponse) firstURL() string {
	switch {
	case s.URL != "":
		return s.URL
	case len(s.URLs) > 0:
		return s.URLs[0]
	case len(s.Images) > 0:
		return s.Images[0]
	default:
		return ""
	}
}
