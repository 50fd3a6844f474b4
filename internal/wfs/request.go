// Package wfs implements the paginated WFS 2.0.0 GetFeature client used to
// pull DERA layers.
package wfs

import (
	"net/url"
	"strconv"

	"github.com/rotisserie/eris"
)

// GetFeatureURL builds a WFS 2.0.0 GetFeature request URL with cursor
// pagination parameters. The spatial reference code is passed through to the
// service unchanged.
func GetFeatureURL(endpoint, typeName, srs, cqlFilter string, startIndex, count int) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", eris.Wrapf(err, "wfs: parse endpoint %q", endpoint)
	}

	q := u.Query()
	q.Set("SERVICE", "WFS")
	q.Set("VERSION", "2.0.0")
	q.Set("REQUEST", "GetFeature")
	q.Set("TYPENAME", typeName)
	q.Set("OUTPUTFORMAT", "application/json")
	q.Set("SRSNAME", srs)
	q.Set("STARTINDEX", strconv.Itoa(startIndex))
	q.Set("COUNT", strconv.Itoa(count))
	if cqlFilter != "" {
		q.Set("CQL_FILTER", cqlFilter)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
