package services

import (
	"testing"

	"academy/constants"
	"academy/models"
)

func searchStudent(id uint, name, email, belt string) models.User {
	student := models.User{
		Name:   name,
		Email:  email,
		Belt:   belt,
		Role:   constants.RoleStudent,
		Active: true,
	}
	student.ID = id
	return student
}

func TestNormalizeInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"João", "joao"},
		{"  MARIA  ", "maria"},
		{"André Luís", "andre luis"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeInput(tt.in); got != tt.want {
			t.Errorf("NormalizeInput(%q) = %q, esperado %q", tt.in, got, tt.want)
		}
	}
}

func TestSearchStudentsByName(t *testing.T) {
	students := []models.User{
		searchStudent(1, "João Pereira", "joao@academia.com", "azul"),
		searchStudent(2, "Maria Souza", "maria@academia.com", "roxa"),
		searchStudent(3, "Pedro Lima", "pedro@academia.com", "branca"),
	}

	results := SearchStudents("joao", students)

	if len(results) == 0 {
		t.Fatal("busca por nome não retornou resultados")
	}
	if results[0].Student.ID != 1 {
		t.Errorf("primeiro resultado = aluno %d, esperado 1", results[0].Student.ID)
	}
	for _, r := range results {
		if r.Score <= 0 {
			t.Errorf("aluno %d entrou no resultado com score %d", r.Student.ID, r.Score)
		}
	}
}

func TestSearchStudentsAccentInsensitive(t *testing.T) {
	students := []models.User{
		searchStudent(1, "João Pereira", "joao@academia.com", "azul"),
	}

	// consulta sem acento encontra nome acentuado
	results := SearchStudents("joao pereira", students)
	if len(results) != 1 {
		t.Fatalf("busca sem acento retornou %d resultados, esperado 1", len(results))
	}
}

func TestSearchStudentsIrrelevantQuery(t *testing.T) {
	students := []models.User{
		searchStudent(1, "João Pereira", "joao@academia.com", "azul"),
	}

	results := SearchStudents("xyzxyzxyz", students)
	if len(results) != 0 {
		t.Errorf("consulta irrelevante retornou %d resultados", len(results))
	}
}

func TestSearchStudentsOrderedByScore(t *testing.T) {
	students := []models.User{
		searchStudent(1, "Carlos Azul", "carlos@academia.com", "preta"),
		searchStudent(2, "Carlos Mendes", "carlos.m@academia.com", "azul"),
	}

	// "carlos azul" bate no nome do 1 e em nome+faixa do 2
	results := SearchStudents("carlos azul", students)
	if len(results) < 2 {
		t.Fatalf("busca retornou %d resultados, esperado 2", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i-1].Score < results[i].Score {
			t.Errorf("resultados fora de ordem: score %d antes de %d",
				results[i-1].Score, results[i].Score)
		}
	}
}

func TestCalculateSimilarity(t *testing.T) {
	if got := calculateSimilarity("joao", "joao"); got != 1.0 {
		t.Errorf("similaridade de strings iguais = %f, esperado 1.0", got)
	}
	if got := calculateSimilarity("", ""); got != 1.0 {
		t.Errorf("similaridade de vazias = %f, esperado 1.0", got)
	}
	if got := calculateSimilarity("joao", "maria"); got > 0.5 {
		t.Errorf("similaridade de nomes distintos = %f, esperado baixa", got)
	}
}
