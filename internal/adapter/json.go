package adapter

import "encoding/json"

// JSON is the document codec for event payloads and metadata documents,
// abstracted so encoding failures can be injected in tests.
//
//go:generate mockgen -source=json.go -destination=../mocks/json.go -package=mocks -mock_names=JSON=MockJSON
type JSON interface {
	// Marshal encodes v as a JSON document
	Marshal(v interface{}) ([]byte, error)

	// Unmarshal decodes a JSON document into v
	Unmarshal(data []byte, v interface{}) error
}

// stdCodec backs JSON with encoding/json
type stdCodec struct{}

// NewJSON returns the codec backed by encoding/json
func NewJSON() JSON {
	return stdCodec{}
}

func (stdCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (stdCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
