package download

import "fmt"

// MissingResourceError reports a resource that does not exist on the
// remote server (HTTP 404).
type MissingResourceError struct {
	URL string
}

func (e *MissingResourceError) Error() string {
	return fmt.Sprintf("unable to download %s; is the URL correct?", e.URL)
}

// BadResourceError reports a fetch that failed with any non-success
// status other than 404.
type BadResourceError struct {
	URL        string
	StatusCode int
}

func (e *BadResourceError) Error() string {
	return fmt.Sprintf("unable to download %s (status code %d)", e.URL, e.StatusCode)
}
