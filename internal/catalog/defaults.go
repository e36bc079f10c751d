package catalog

const (
	FieldName            = "name"
	FieldDepartment      = "department"
	FieldRole            = "role"
	FieldStatus          = "status"
	FieldLastActive      = "lastActive"
	FieldModulesAssigned = "modulesAssigned"
	FieldCreatedAt       = "createdAt"
	FieldUpdatedAt       = "updatedAt"
)

const (
	OperatorEquals      = "equals"
	OperatorContains    = "contains"
	OperatorStartsWith  = "startsWith"
	OperatorEndsWith    = "endsWith"
	OperatorGreaterThan = "greaterThan"
	OperatorLessThan    = "lessThan"
	OperatorBetween     = "between"
	OperatorIn          = "in"
)

// Default returns the catalog the dashboard ships with.
func Default() Catalog {
	return Catalog{
		Fields: []Option{
			{ID: FieldName, Label: "Name"},
			{ID: FieldDepartment, Label: "Department"},
			{ID: FieldRole, Label: "Role"},
			{ID: FieldStatus, Label: "Status"},
			{ID: FieldLastActive, Label: "Last Active"},
			{ID: FieldModulesAssigned, Label: "Modules Assigned"},
			{ID: FieldCreatedAt, Label: "Created Date"},
			{ID: FieldUpdatedAt, Label: "Updated Date"},
		},
		Operators: []Option{
			{ID: OperatorEquals, Label: "Equals"},
			{ID: OperatorContains, Label: "Contains"},
			{ID: OperatorStartsWith, Label: "Starts with"},
			{ID: OperatorEndsWith, Label: "Ends with"},
			{ID: OperatorGreaterThan, Label: "Greater than"},
			{ID: OperatorLessThan, Label: "Less than"},
			{ID: OperatorBetween, Label: "Between"},
			{ID: OperatorIn, Label: "In list"},
		},
		Plans: []Plan{
			{
				ID:           "basic",
				Name:         "Basic",
				PriceMonthly: 0,
				Features: []string{
					"Up to 5 team members",
					"Basic module access",
					"Email support",
					"Basic analytics",
				},
			},
			{
				ID:           "pro",
				Name:         "Professional",
				PriceMonthly: 49,
				Features: []string{
					"Up to 20 team members",
					"Full module access",
					"Priority support",
					"Advanced analytics",
					"Custom branding",
				},
				Recommended: true,
			},
			{
				ID:           "enterprise",
				Name:         "Enterprise",
				PriceMonthly: 199,
				Features: []string{
					"Unlimited team members",
					"Full module access",
					"Dedicated support",
					"Custom module development",
					"White labeling",
					"SSO integration",
				},
			},
		},
		Departments: []string{
			"Engineering",
			"Finance",
			"Human Resources",
			"Marketing",
			"Sales",
			"Operations",
			"Legal",
			"Customer Support",
			"Research & Development",
			"Product Management",
			"Quality Assurance",
			"Business Development",
			"Administration",
			"Information Technology",
			"Design",
		},
		Roles: []Role{
			{ID: "admin", Name: "Admin", Description: "Full access to all features"},
			{ID: "manager", Name: "Manager", Description: "Can manage team and assign modules"},
			{ID: "user", Name: "User", Description: "Can access assigned modules"},
			{ID: "viewer", Name: "Viewer", Description: "Read-only access to assigned modules"},
		},
		Permissions: []string{
			"View analytics",
			"Manage billing",
			"Access reports",
			"Invite team members",
			"Configure security settings",
		},
		Modules: []Entity{
			{ID: "1", DisplayName: "Financial Reporting Suite", Category: "Finance", Detail: "Comprehensive financial reporting tools"},
			{ID: "2", DisplayName: "HR Management System", Category: "HR", Detail: "Complete HR management solution"},
		},
		Users: []Entity{
			{ID: "1", DisplayName: "John Doe", Category: "Finance", Detail: "john@example.com"},
			{ID: "2", DisplayName: "Jane Smith", Category: "HR", Detail: "jane@example.com"},
		},
	}
}
