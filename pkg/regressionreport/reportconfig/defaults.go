package reportconfig

// DefaultConfig returns the built-in report definition used when no
// configuration file is given.
func DefaultConfig() *Config {
	config := &Config{
		RerunJobs: []RerunJobConfig{
			glRegressionConfig(),
			gl1000rRegressionConfig(),
		},
		JobGroups: []JobGroupConfig{
			navigationConfig(),
		},
	}
	config.applyDefaults()
	return config
}

func glRegressionConfig() RerunJobConfig {
	return RerunJobConfig{
		SheetTitle: "GL Regression",
		RerunJob:   "GL Regression Test Fail",
		JobConfig: JobConfig{
			View:                      "GL Regression",
			Job:                       "GL Regression Build",
			ApplicationClassnameIndex: 7,
			FilepathRange:             &FilepathRange{Start: 3, End: 7},
			Classifiers:               []ClassifierKind{ClassifierApplicationName},
			AppTitleMappings: map[string]string{
				"accounts_receivable":       "Accounts Receivable",
				"accounting_tools":          "Accounting Tools",
				"application_environment":   "Application Environment",
				"audit_reporting":           "Audit Reporting",
				"bank_deposits":             "Bank Deposits",
				"cashier":                   "Cashier",
				"charge_customers":          "Charge Customers",
				"chart_of_accounts":         "Chart of Accounts",
				"enter_transactions":        "Enter Transactions",
				"financial_analysis":        "Financial Analysis",
				"gl_customer_contact":       "GL Customer Contact",
				"gl_inventory":              "GL Inventory",
				"miscellaneous":             "Miscellaneous",
				"glptrns":                   "GLPTRNS",
				"hand_written_checks":       "Hand Written Checks",
				"inquiry":                   "Inquiry",
				"managed_accounts":          "Managed Accounts",
				"open_payables":             "Open Payables",
				"purchasing":                "Purchasing",
				"receipt_cash":              "Receipt Cash",
				"reconcile_bank_accounts":   "Reconcile Bank Accounts",
				"report_to_outside_parties": "Report to Outside Parties",
				"transaction_analysis":      "Transaction Analysis",
				"vendors":                   "Vendors",
				"write_checks":              "Write Checks",
				"dmscore_6420":              "DMSCORE 6420",
			},
		},
	}
}

func gl1000rRegressionConfig() RerunJobConfig {
	return RerunJobConfig{
		SheetTitle: "GL1000R",
		RerunJob:   "GL1000R Rerun Test Failures",
		JobConfig: JobConfig{
			View:                      "GL Regression",
			Job:                       "GL1000R_REGRESSION_TEST",
			ApplicationClassnameIndex: 8,
			ApplicationNameDelimiter:  "GL1000_",
			FilepathRange:             &FilepathRange{Start: 3, End: 8},
			Classifiers:               []ClassifierKind{ClassifierApplicationName},
			AppTitleMappings: map[string]string{
				"miscellaneous":          "Miscellaneous",
				"line_field":             "Line Number",
				"line_number":            "Line Number",
				"amount_field":           "Amount",
				"amount":                 "Amount",
				"change_control_number":  "Control Number",
				"control_number":         "Control Number",
				"change_document_number": "Document Number",
				"document_number":        "Document Number",
				"cost_field":             "Cost",
				"cost":                   "Cost",
				"change_journal":         "Journal",
				"journal":                "Journal",
				"date_field":             "Date",
				"date":                   "Date",
				"test_transactions":      "Transactions",
				"transactions":           "Transactions",
				"reference_number":       "Reference Number",
				"reference":              "Reference Number",
				"override_control":       "Override Control",
				"change_description":     "Change Description",
				"description":            "Change Description",
				"change_account":         "Account",
				"account":                "Account",
			},
		},
	}
}

func navigationConfig() JobGroupConfig {
	return JobGroupConfig{
		SheetTitle: "Navigation",
		Jobs: []GroupJob{
			{AppTitle: "CS/BO/IN", Job: "navigation CS BO IN2"},
			{AppTitle: "GL/PY", Job: "navigation GL PY"},
			{AppTitle: "PD", Job: "navigation PD"},
			{AppTitle: "SD", Job: "navigation SD"},
			{AppTitle: "SE/DG/DR/EX/PM", Job: "navigation SE DG DR EX PM"},
		},
		JobConfig: JobConfig{
			View:                      "Navigations",
			ApplicationClassnameIndex: 7,
			TestNameDelimiter:         "_nav[0-9]+_[0-9]+_navigation_",
			FilepathRange:             &FilepathRange{Start: 3, End: 6},
			Classifiers:               []ClassifierKind{ClassifierTestCaseNames},
		},
	}
}
