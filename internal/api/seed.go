package api

import (
	"github.com/soaringjerry/klausurarchiv/internal/models"
	"github.com/soaringjerry/klausurarchiv/internal/services"
)

const SeedAdminKarma = 1200

// SeedExams is the initial public catalogue.
func SeedExams() []models.Exam {
	return []models.Exam{
		{ID: "1", Subject: "Mathematik", Teacher: "Herr Müller", GradeLevel: "10b", Date: "2023-11-15", UploaderName: "Max", FileName: "mathe_kl1.pdf", FileType: models.FileTypePDF, Tags: []string{"analysis", "schwer", "klausur"}, Ratings: models.Ratings{DifficultySum: 12, QualitySum: 14, Count: 3}, Transcript: "Integralrechnung Analysis Klausur", IsApproved: true, Views: 124, Downloads: 45},
		{ID: "2", Subject: "Deutsch", Teacher: "Frau Schmidt", GradeLevel: "12", Date: "2023-10-20", UploaderName: "Anna", FileName: "faust_essay.pdf", FileType: models.FileTypePDF, Tags: []string{"faust", "essay", "wichtig"}, Ratings: models.Ratings{DifficultySum: 5, QualitySum: 9, Count: 2}, IsApproved: true, Views: 89, Downloads: 12},
		{ID: "3", Subject: "Englisch", Teacher: "Mrs. Jones", GradeLevel: "11a", Date: "2024-01-10", UploaderName: "Tom", FileName: "vocab_test.jpg", FileType: models.FileTypeImage, FileContent: "https://images.unsplash.com/photo-1543286386-713df548e9cc?auto=format&fit=crop&q=80&w=400", Tags: []string{"vokabeln", "test", "kurz"}, Ratings: models.Ratings{DifficultySum: 4, QualitySum: 15, Count: 3}, Transcript: "Vocabulary Test Unit 3 Environment Pollution", IsApproved: true, Views: 230, Downloads: 67},
		{ID: "4", Subject: "Physik", Teacher: "Herr Wagner", GradeLevel: "13", Date: "2023-12-05", UploaderName: "Lisa", FileName: "quanten.pdf", FileType: models.FileTypePDF, Tags: []string{"quantenmechanik", "komplex", "abi"}, Ratings: models.Ratings{DifficultySum: 23, QualitySum: 20, Count: 5}, IsApproved: true, Views: 56, Downloads: 8},
		{ID: "5", Subject: "Geschichte", Teacher: "Herr Weber", GradeLevel: "10a", Date: "2024-02-15", UploaderName: "Kevin", FileName: "ww2_source.jpg", FileType: models.FileTypeImage, FileContent: "https://images.unsplash.com/photo-1461360370896-922624d12aa1?auto=format&fit=crop&q=80&w=400", Tags: []string{"2. weltkrieg", "quellenanalyse"}, Ratings: models.Ratings{DifficultySum: 6, QualitySum: 8, Count: 2}, Transcript: "Rede von Churchill Quellenanalyse", IsApproved: true, Views: 102, Downloads: 33},
		{ID: "6", Subject: "Mathematik", Teacher: "Frau Becker", GradeLevel: "9c", Date: "2023-09-12", UploaderName: "Tim", FileName: "algebra.pdf", FileType: models.FileTypePDF, Tags: []string{"algebra", "grundlagen"}, Ratings: models.Ratings{DifficultySum: 2, QualitySum: 5, Count: 1}, IsApproved: true, Views: 45, Downloads: 10},
		{ID: "7", Subject: "Biologie", Teacher: "Herr Schulz", GradeLevel: "GK 11", Date: "2023-11-30", UploaderName: "Sarah", FileName: "zellen.pdf", FileType: models.FileTypePDF, Tags: []string{"cytologie", "skizzen"}, Ratings: models.Ratings{DifficultySum: 8, QualitySum: 12, Count: 3}, IsApproved: true, Views: 78, Downloads: 22},
		{ID: "8", Subject: "Chemie", Teacher: "Frau Fischer", GradeLevel: "LK 12", Date: "2024-01-20", UploaderName: "Paul", FileName: "periodensystem.jpg", FileType: models.FileTypeImage, FileContent: "https://images.unsplash.com/photo-1532094349884-543bc11b234d?auto=format&fit=crop&q=80&w=400", Tags: []string{"pse", "übersicht"}, Ratings: models.Ratings{DifficultySum: 3, QualitySum: 5, Count: 1}, Transcript: "Periodensystem der Elemente Elemente Gruppen", IsApproved: true, Views: 156, Downloads: 89},
		{ID: "9", Subject: "Informatik", Teacher: "Herr Klein", GradeLevel: "10b", Date: "2023-12-12", UploaderName: "Nerd", FileName: "java_code.pdf", FileType: models.FileTypePDF, Tags: []string{"java", "programmieren", "arrays"}, Ratings: models.Ratings{DifficultySum: 16, QualitySum: 16, Count: 4}, IsApproved: true, Views: 34, Downloads: 5},
		{ID: "10", Subject: "Kunst", Teacher: "Frau Kunst", GradeLevel: "5a", Date: "2023-10-01", UploaderName: "Kid", FileName: "bild.jpg", FileType: models.FileTypeImage, FileContent: "https://images.unsplash.com/photo-1513364776144-60967b0f800f?auto=format&fit=crop&q=80&w=400", Tags: []string{"perspektive", "zeichnung"}, Ratings: models.Ratings{DifficultySum: 4, QualitySum: 10, Count: 2}, Transcript: "Zentralperspektive Fluchtpunkt", IsApproved: true, Views: 22, Downloads: 3},
		{ID: "11", Subject: "Mathematik", Teacher: "Herr Müller", GradeLevel: "11", Date: "2024-01-05", UploaderName: "Max", FileName: "analysis.pdf", FileType: models.FileTypePDF, Tags: []string{"funktionen", "ableitungen"}, Ratings: models.Ratings{DifficultySum: 0, QualitySum: 0, Count: 0}, IsApproved: true, Views: 67, Downloads: 14},
		{ID: "12", Subject: "Englisch", Teacher: "Mr. Smith", GradeLevel: "8b", Date: "2023-11-22", UploaderName: "John", FileName: "grammar.pdf", FileType: models.FileTypePDF, Tags: []string{"grammar", "tenses"}, Ratings: models.Ratings{DifficultySum: 5, QualitySum: 8, Count: 2}, IsApproved: true, Views: 88, Downloads: 20},
		{ID: "13", Subject: "Deutsch", Teacher: "Herr Weber", GradeLevel: "13", Date: "2024-02-01", UploaderName: "Fritz", FileName: "gedichtanalyse.jpg", FileType: models.FileTypeImage, FileContent: "https://images.unsplash.com/photo-1455390582262-044cdead277a?auto=format&fit=crop&q=80&w=400", Tags: []string{"lyrik", "romantik"}, Ratings: models.Ratings{DifficultySum: 12, QualitySum: 11, Count: 3}, IsApproved: true, Views: 110, Downloads: 40},
		{ID: "14", Subject: "Physik", Teacher: "Frau Meyer", GradeLevel: "10a", Date: "2023-11-10", UploaderName: "Albert", FileName: "mechanik.pdf", FileType: models.FileTypePDF, Tags: []string{"mechanik", "kraft"}, Ratings: models.Ratings{DifficultySum: 4, QualitySum: 4, Count: 1}, IsApproved: true, Views: 44, Downloads: 9},
		{ID: "15", Subject: "Geschichte", Teacher: "Frau Schmidt", GradeLevel: "9a", Date: "2023-10-30", UploaderName: "Hans", FileName: "mittelalter.pdf", FileType: models.FileTypePDF, Tags: []string{"ritter", "lehnswesen"}, Ratings: models.Ratings{DifficultySum: 0, QualitySum: 0, Count: 0}, IsApproved: true, Views: 30, Downloads: 2},
		{ID: "16", Subject: "Sport", Teacher: "Herr Fit", GradeLevel: "12", Date: "2023-09-20", UploaderName: "Gym", FileName: "trainingsplan.pdf", FileType: models.FileTypePDF, Tags: []string{"theorie", "muskeln"}, Ratings: models.Ratings{DifficultySum: 2, QualitySum: 5, Count: 1}, IsApproved: true, Views: 12, Downloads: 1},
		{ID: "17", Subject: "Geografie", Teacher: "Frau Erde", GradeLevel: "7c", Date: "2024-01-15", UploaderName: "Geo", FileName: "karte.jpg", FileType: models.FileTypeImage, FileContent: "https://images.unsplash.com/photo-1524661135-423995f22d0b?auto=format&fit=crop&q=80&w=400", Tags: []string{"europa", "flüsse"}, Ratings: models.Ratings{DifficultySum: 3, QualitySum: 3, Count: 1}, IsApproved: true, Views: 55, Downloads: 11},
		{ID: "18", Subject: "Musik", Teacher: "Herr Ton", GradeLevel: "6b", Date: "2023-12-18", UploaderName: "Mozart", FileName: "noten.pdf", FileType: models.FileTypePDF, Tags: []string{"notenlehre", "takt"}, Ratings: models.Ratings{DifficultySum: 0, QualitySum: 0, Count: 0}, IsApproved: true, Views: 25, Downloads: 4},
		{ID: "19", Subject: "Mathematik", Teacher: "Herr Wagner", GradeLevel: "13", Date: "2024-02-20", UploaderName: "MathGenius", FileName: "stochastik.pdf", FileType: models.FileTypePDF, Tags: []string{"wahrscheinlichkeit", "abi"}, Ratings: models.Ratings{DifficultySum: 18, QualitySum: 18, Count: 4}, IsApproved: true, Views: 90, Downloads: 35},
		{ID: "20", Subject: "Religion", Teacher: "Frau Glaube", GradeLevel: "10", Date: "2023-11-01", UploaderName: "Reli", FileName: "ethik.pdf", FileType: models.FileTypePDF, Tags: []string{"ethik", "moral"}, Ratings: models.Ratings{DifficultySum: 6, QualitySum: 8, Count: 2}, IsApproved: true, Views: 40, Downloads: 8},
	}
}

// Seed installs the administrator account and the initial catalogue into an
// empty store. Existing exams are left alone.
func Seed(store Store, auth *services.AuthService, adminUsername, adminPassword string) error {
	if _, err := auth.SeedAdministrator(adminUsername, adminPassword, SeedAdminKarma); err != nil {
		return err
	}
	if len(store.ListExams()) > 0 {
		return nil
	}
	exams := SeedExams()
	for i := len(exams) - 1; i >= 0; i-- {
		store.PrependExam(exams[i])
	}
	return nil
}
