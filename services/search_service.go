package services

import (
	"sort"
	"strings"
	"sync"

	"academy/constants"
	"academy/dto"
	"academy/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// NormalizeInput tira acentos e caixa para a busca (nomes brasileiros têm
// acento; a consulta normalmente não).
func NormalizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ToLower(unidecode.Unidecode(input))
	return input
}

func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

// calculateSimilarity devolve a similaridade [0,1] entre duas strings.
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}

	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(distance)/maxLen
}

// parseBeltFromQuery tenta extrair uma faixa da consulta.
func parseBeltFromQuery(query string) string {
	matcher := createMatcher(constants.Belts)
	match := matcher.Closest(query)
	if match != "" && strings.Contains(query, match) {
		return match
	}
	return ""
}

func scoreStudent(query string, student models.User, beltFromQuery string) int {
	score := 0

	if beltFromQuery != "" && NormalizeInput(student.Belt) == beltFromQuery {
		score += 15
	}

	normalizedName := NormalizeInput(student.Name)
	if strings.Contains(normalizedName, query) || strings.Contains(query, normalizedName) {
		score += 20
	} else {
		for _, part := range strings.Fields(normalizedName) {
			for _, qpart := range strings.Fields(query) {
				if calculateSimilarity(part, qpart) > 0.7 {
					score += 10
				}
			}
		}
	}

	if strings.Contains(NormalizeInput(student.Email), query) {
		score += 10
	}

	return score
}

func toUserResponse(user models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PhoneNumber:  user.PhoneNumber,
		Role:         user.Role,
		Active:       user.Active,
		Belt:         user.Belt,
		Degree:       user.Degree,
		Avatar:       user.Avatar,
		DateOfBirth:  user.DateOfBirth,
		TrainingDays: user.TrainingDays,
		IsVerified:   user.IsVerified,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// SearchStudents pontua e ordena os alunos contra uma consulta livre
// ("joao faixa azul"). Só entram no resultado alunos com alguma relevância.
func SearchStudents(query string, students []models.User) []dto.ScoredStudent {
	normalizedQuery := NormalizeInput(query)
	beltFromQuery := parseBeltFromQuery(normalizedQuery)

	scoreCh := make(chan dto.ScoredStudent, len(students))
	var wg sync.WaitGroup

	for _, student := range students {
		wg.Add(1)
		go func(student models.User) {
			defer wg.Done()
			score := scoreStudent(normalizedQuery, student, beltFromQuery)
			if score > 0 {
				scoreCh <- dto.ScoredStudent{
					Student: toUserResponse(student),
					Score:   score,
				}
			}
		}(student)
	}

	wg.Wait()
	close(scoreCh)

	results := make([]dto.ScoredStudent, 0, len(students))
	for scored := range scoreCh {
		results = append(results, scored)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}
