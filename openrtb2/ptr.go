package openrtb2

// StringPtr returns pointer to passed argument.
func StringPtr(s string) *string {
	return &s
}

// ContentContextPtr returns pointer to passed argument.
func ContentContextPtr(c ContentContext) *ContentContext {
	return &c
}
