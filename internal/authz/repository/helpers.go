package repository

import (
	"encoding/json"

	authzDomain "github.com/allisson/fleet/internal/authz/domain"
	apperrors "github.com/allisson/fleet/internal/errors"
)

func marshalAccessLevels(levels []authzDomain.AccessLevel) ([]byte, error) {
	data, err := json.Marshal(levels)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal access levels")
	}
	return data, nil
}

// marshalConstraints serializes grant constraints, mapping nil to a SQL NULL.
func marshalConstraints(constraints *authzDomain.GrantConstraints) (any, error) {
	if constraints == nil {
		return nil, nil
	}
	data, err := json.Marshal(constraints)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal grant constraints")
	}
	return data, nil
}

// unmarshalConstraints deserializes grant constraints, mapping SQL NULL to nil.
func unmarshalConstraints(data []byte) (*authzDomain.GrantConstraints, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var constraints authzDomain.GrantConstraints
	if err := json.Unmarshal(data, &constraints); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal grant constraints")
	}
	return &constraints, nil
}

// marshalTemplateKeys serializes a custom role's source template keys,
// mapping an empty slice to a SQL NULL.
func marshalTemplateKeys(keys []string) (any, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(keys)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal source template keys")
	}
	return data, nil
}

func unmarshalTemplateKeys(data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal source template keys")
	}
	return keys, nil
}
