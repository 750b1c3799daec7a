package sql

import (
	"embed"
)

// Migrations holds the warehouse DDL, applied in filename order.
//
//go:embed migrations
var Migrations embed.FS

//go:embed queries/register_claim_file.sql
var RegisterClaimFile string

//go:embed queries/lookup_claim_file.sql
var LookupClaimFile string

//go:embed queries/update_claim_file_status.sql
var UpdateClaimFileStatus string

//go:embed queries/insert_claim.sql
var InsertClaim string

//go:embed queries/delete_claim_rows.sql
var DeleteClaimRows string

//go:embed queries/finalize_claim_file.sql
var FinalizeClaimFile string
