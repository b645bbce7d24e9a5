package domain

type CtxKey string

const (
	// KeyExternalID carries the identity provider subject (JWT "sub"), the only
	// identity the core trusts.
	KeyExternalID CtxKey = "ExternalID"
	KeyUserEmail  CtxKey = "Email"
)
