package sqlassets

import _ "embed"

//go:embed schema/platform/credentials.sql
var CredentialsSQL string

//go:embed schema/platform/tenants.sql
var TenantsSQL string
