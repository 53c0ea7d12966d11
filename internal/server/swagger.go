//+build swagger

package server

// swagger:parameters IssueCredential
type issueCredentialParameters struct {
	// in: body
	// required: true
	Body struct {
		// swagger:allOf IssueCredentialRequest
	}
}

// swagger:parameters Profile PublishCredential History
type addressParameter struct {
	// Subject address.
	// in: path
	// required: true
	Address string `json:"address"`
}
