package match

// TypeRef is a protocol {id, name} type tag.
type TypeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Candidate is one ranked reconciliation result in the protocol shape.
// Clients render Name and Description directly, so their composition is part
// of the observable contract.
type Candidate struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Types       []TypeRef `json:"type"`
	Score       int       `json:"score"`
	Match       bool      `json:"match"`
	Description string    `json:"description"`
}
