package alfa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/carbocation/alfafreq"
	"github.com/carbocation/pfx"
)

// populationRoots accepts the populations field either as a single tree or as
// a list of trees.
type populationRoots []alfafreq.PopulationNode

func (p *populationRoots) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var roots []alfafreq.PopulationNode
		if err := json.Unmarshal(data, &roots); err != nil {
			return err
		}
		*p = roots
		return nil
	}

	var root alfafreq.PopulationNode
	if err := json.Unmarshal(data, &root); err != nil {
		return err
	}
	*p = populationRoots{root}

	return nil
}

type frequencyMetadata struct {
	Accession   string          `json:"ac,omitempty"`
	Populations populationRoots `json:"populations"`
}

// MetadataURL is the URL of the population metadata tree.
func (c *Client) MetadataURL() string {
	return c.config.BaseURL + "/metadata/frequency"
}

// PopulationTree fetches the population metadata tree. Only the first
// element of the response array is used.
func (c *Client) PopulationTree(ctx context.Context) ([]alfafreq.PopulationNode, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	url := c.MetadataURL()
	status, body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: status, Body: body}
	}

	var parsed []frequencyMetadata
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", url, err))
	}

	if len(parsed) < 1 {
		return nil, pfx.Err(fmt.Errorf("%s: response contained no metadata entries", url))
	}

	return parsed[0].Populations, nil
}

// Populations fetches the population metadata tree once and flattens it into
// a biosample identifier -> display name map.
func (c *Client) Populations(ctx context.Context) (alfafreq.PopulationMap, error) {
	roots, err := c.PopulationTree(ctx)
	if err != nil {
		return nil, err
	}

	return alfafreq.Flatten(roots...), nil
}
