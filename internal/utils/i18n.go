package utils

import "fmt"

// Server-side notification texts. German is the catalogue default.

const DefaultLocale = "de"

var SupportedLocales = []string{"de", "en"}

var translations = map[string]map[string]string{
	"de": {
		"health.ok":                "ok",
		"auth.welcome":             "Willkommen zurück, %s!",
		"auth.not_approved":        "Account noch nicht freigeschaltet.",
		"auth.invalid_credentials": "Ungültige Anmeldedaten.",
		"auth.username_taken":      "Benutzername bereits vergeben.",
		"auth.registered":          "Registrierung erfolgreich! Warten auf Freischaltung.",
		"auth.logged_out":          "Erfolgreich abgemeldet.",
		"auth.required":            "Bitte melden Sie sich an.",
		"exam.tag_added":           "Tag hinzugefügt",
		"exam.rated":               "Bewertung gespeichert (+5 Karma)",
		"exam.already_rated":       "Sie haben diese Klausur bereits bewertet.",
		"exam.reported":            "Klausur wurde gemeldet.",
		"exam.download_started":    "Download gestartet...",
		"exam.uploaded":            "Klausur erfolgreich hochgeladen! (+50 Karma)",
		"exam.upload_pending":      "Klausur hochgeladen! Warte auf Freigabe durch Admin. (+50 Karma)",
		"admin.user_approved":      "Benutzer freigeschaltet.",
		"admin.exam_approved":      "Klausur freigegeben.",
		"admin.exam_deleted":       "Klausur gelöscht.",
		"admin.report_cleared":     "Meldung entfernt.",
		"favorites.added":          "Zu Favoriten hinzugefügt",
		"favorites.removed":        "Aus Favoriten entfernt",
		"error.invalid":            "Ungültige Eingabe.",
		"error.unauthorized":       "Diese Aktion ist Administratoren vorbehalten.",
		"error.forbidden":          "Zugriff verweigert.",
		"error.not_found":          "Nicht gefunden.",
		"error.conflict":           "Diese Aktion ist im aktuellen Zustand nicht möglich.",
		"error.bad_gateway":        "Externer Dienst nicht erreichbar.",
		"error.too_many_requests":  "Zu viele Anfragen. Bitte später erneut versuchen.",
		"error.internal":           "Interner Fehler.",
	},
	"en": {
		"health.ok":                "ok",
		"auth.welcome":             "Welcome back, %s!",
		"auth.not_approved":        "Account not yet approved.",
		"auth.invalid_credentials": "Invalid credentials.",
		"auth.username_taken":      "Username already taken.",
		"auth.registered":          "Registration successful! Waiting for approval.",
		"auth.logged_out":          "Logged out.",
		"auth.required":            "Please log in.",
		"exam.tag_added":           "Tag added",
		"exam.rated":               "Rating saved (+5 karma)",
		"exam.already_rated":       "You already rated this exam.",
		"exam.reported":            "Exam reported.",
		"exam.download_started":    "Download started...",
		"exam.uploaded":            "Exam uploaded! (+50 karma)",
		"exam.upload_pending":      "Exam uploaded! Waiting for admin approval. (+50 karma)",
		"admin.user_approved":      "User approved.",
		"admin.exam_approved":      "Exam approved.",
		"admin.exam_deleted":       "Exam deleted.",
		"admin.report_cleared":     "Report cleared.",
		"favorites.added":          "Added to favorites",
		"favorites.removed":        "Removed from favorites",
		"error.invalid":            "Invalid input.",
		"error.unauthorized":       "This action is reserved for administrators.",
		"error.forbidden":          "Access denied.",
		"error.not_found":          "Not found.",
		"error.conflict":           "This action is not possible in the current state.",
		"error.bad_gateway":        "External service unavailable.",
		"error.too_many_requests":  "Too many requests. Please try again later.",
		"error.internal":           "Internal error.",
	},
}

// T returns the translated string for key in locale, falling back to German.
// Extra args are applied with fmt.Sprintf.
func T(locale, key string, args ...any) string {
	msg := lookup(locale, key)
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

func lookup(locale, key string) string {
	if m, ok := translations[locale]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if v, ok := translations[DefaultLocale][key]; ok {
		return v
	}
	return key
}
