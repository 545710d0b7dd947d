package models

// BulkImportReport summarizes one CSV import run. Totals always add up
// (total_rows == successful_imports + failed_imports); the detail lists
// are capped by the report builder so a huge file cannot blow up the
// response body.
type BulkImportReport struct {
	Success           bool     `json:"success"`
	TotalRows         int      `json:"total_rows"`
	SuccessfulImports int      `json:"successful_imports"`
	FailedImports     int      `json:"failed_imports"`
	Errors            []string `json:"errors"`
	ImportedSpecs     []string `json:"imported_specs"`
}

// BrandSyncReport summarizes syncing a single brand from the specs API.
type BrandSyncReport struct {
	Success           bool     `json:"success"`
	Brand             string   `json:"brand"`
	TotalPhones       int      `json:"total_phones"`
	SuccessfulImports int      `json:"successful_imports"`
	FailedImports     int      `json:"failed_imports"`
	Errors            []string `json:"errors"`
}

// FullSyncReport summarizes a multi-brand sync run. Status is
// "completed" on any normal finish, partial results included.
type FullSyncReport struct {
	Success           bool     `json:"success"`
	Status            string   `json:"status"`
	TotalBrands       int      `json:"total_brands"`
	TotalPhones       int      `json:"total_phones"`
	SuccessfulImports int      `json:"successful_imports"`
	FailedImports     int      `json:"failed_imports"`
	ImportedPhones    []string `json:"imported_phones"`
	Errors            []string `json:"errors"`
}
