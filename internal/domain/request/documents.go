package request

// Category identifies which flavor of mortgage a request belongs to.
// Each category carries its own mandatory document set.
type Category string

const (
	CategoryFirstHome          Category = "firstHome"
	CategorySecondHome         Category = "secondHome"
	CategoryCommercialProperty Category = "commercialProperty"
	CategoryRemodeling         Category = "remodeling"
)

// DocumentType names an attachment within a request's document set.
type DocumentType string

const (
	DocProofIncome                DocumentType = "proofIncome"
	DocCreditHistory              DocumentType = "creditHistory"
	DocAppraisalCertificate       DocumentType = "appraisalCertificate"
	DocBankAccountState           DocumentType = "bankAccountState"
	DocWorkCertificate            DocumentType = "workCertificate"
	DocPropertyWriting            DocumentType = "propertyWriting"
	DocBusinessFinancialStatement DocumentType = "businessFinancialStatement"
	DocBusinessPlan               DocumentType = "businessPlan"
	DocRemodelingBudget           DocumentType = "remodelingBudget"
)

var requiredDocuments = map[Category][]DocumentType{
	CategoryFirstHome: {
		DocProofIncome,
		DocCreditHistory,
		DocAppraisalCertificate,
		DocBankAccountState,
		DocWorkCertificate,
	},
	CategorySecondHome: {
		DocProofIncome,
		DocCreditHistory,
		DocAppraisalCertificate,
		DocPropertyWriting,
		DocBankAccountState,
		DocWorkCertificate,
	},
	CategoryCommercialProperty: {
		DocProofIncome,
		DocAppraisalCertificate,
		DocBusinessFinancialStatement,
		DocBusinessPlan,
		DocBankAccountState,
		DocWorkCertificate,
	},
	CategoryRemodeling: {
		DocProofIncome,
		DocAppraisalCertificate,
		DocRemodelingBudget,
		DocBankAccountState,
		DocWorkCertificate,
	},
}

// Valid reports whether c is a known request category.
func (c Category) Valid() bool {
	_, ok := requiredDocuments[c]
	return ok
}

// RequiredDocuments lists the document types a category demands, in
// submission order. Unknown categories get nil.
func RequiredDocuments(c Category) []DocumentType {
	return requiredDocuments[c]
}
