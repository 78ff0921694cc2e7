package cma

// UpdatePayload is the outbound fields block of a create or update request:
// field name → locale code → wire value.
type UpdatePayload map[string]map[string]interface{}

// ComputeUpdatePayload computes the fields block to submit on update: the
// current store re-encoded to wire form, overlaid with the newly supplied
// attributes at the target locale. The overlay is a depth-2 structural merge
// (field → locale → value): locales not mentioned in the new attributes, and
// fields not mentioned at all, are left exactly as the store holds them.
//
// When a schema is supplied, attribute keys it does not declare are dropped
// silently. The function is pure: attrs is never mutated, and applying the
// same update twice produces the same payload both times.
func ComputeUpdatePayload(store *FieldStore, attrs map[string]interface{}, locale string, schema *ContentTypeSchema) (UpdatePayload, error) {
	payload, err := encodeStore(store, schema)
	if err != nil {
		return nil, err
	}

	for name, value := range attrs {
		var desc *FieldDescriptor

		if schema != nil {
			declared, ok := schema.Field(name)
			if !ok {
				continue
			}

			desc = declared
		}

		wire, include, err := EncodeField(desc, value)
		if err != nil {
			return nil, err
		}

		if !include {
			continue
		}

		locales, ok := payload[name]
		if !ok {
			locales = make(map[string]interface{})
			payload[name] = locales
		}

		locales[locale] = wire
	}

	return payload, nil
}

// encodeStore flattens the current field state back to wire form, so that
// previously hydrated domain objects (a stored entry reference, a decoded
// location) become link and coordinate objects again.
func encodeStore(store *FieldStore, schema *ContentTypeSchema) (UpdatePayload, error) {
	payload := make(UpdatePayload)
	if store == nil {
		return payload, nil
	}

	for _, name := range store.FieldNames() {
		var desc *FieldDescriptor
		if schema != nil {
			desc, _ = schema.Field(name)
		}

		for _, locale := range store.Locales() {
			value, ok := store.Get(name, locale)
			if !ok {
				continue
			}

			wire, include, err := EncodeField(desc, value)
			if err != nil {
				return nil, err
			}

			if !include {
				continue
			}

			locales, ok := payload[name]
			if !ok {
				locales = make(map[string]interface{})
				payload[name] = locales
			}

			locales[locale] = wire
		}
	}

	return payload, nil
}
