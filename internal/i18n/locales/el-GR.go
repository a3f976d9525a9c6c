package locales

// Messages Ελληνικές μεταφράσεις
var MessagesElGR = map[string]string{
	// Γενικά μηνύματα
	"common.success": "Επιτυχία",
	"common.healthy": "Η υπηρεσία λειτουργεί κανονικά",

	// Πληροφορίες υπηρεσίας
	"service.description": "REST API για μετάφραση κειμένου μεταξύ Κινεζικών, Αγγλικών και Ελληνικών",
	"service.running":     "Το Translation API εκτελείται",

	// Μετάφραση
	"translate.success":       "Η μετάφραση ολοκληρώθηκε",
	"translate.batch_success": "Η μαζική μετάφραση ολοκληρώθηκε",
	"translate.failed":        "Η μετάφραση απέτυχε: {{.Reason}}",

	// Σφάλματα επικύρωσης
	"error.invalid_language":  "Μη έγκυρος κωδικός γλώσσας: {{.Code}}. Πρέπει να είναι ένας από: {{.Valid}}",
	"error.same_language":     "Η γλώσσα προέλευσης και προορισμού δεν μπορεί να είναι ίδια",
	"error.unsupported_route": "Δεν υπάρχει διαδρομή μετάφρασης από {{.From}} σε {{.To}}",
	"error.missing_field":     "Λείπει υποχρεωτικό πεδίο: {{.Field}}",
	"error.invalid_json":      "Μη έγκυρη μορφή JSON",

	// Προσωρινή μνήμη
	"cache.cleared": "Η προσωρινή μνήμη μοντέλων εκκαθαρίστηκε",
	"cache.stats":   "Στατιστικά προσωρινής μνήμης",

	// Ιστορικό
	"history.listed": "Ιστορικό μεταφράσεων",
}
