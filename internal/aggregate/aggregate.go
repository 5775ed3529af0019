// Package aggregate computes the summary views written to the sink. Every
// view is a pure function of the merged dataset.
//
// Nulls follow SQL aggregate semantics throughout: an expression with a nil
// operand is nil, SUM skips nil values, and a group whose values are all nil
// sums to nil. COUNT counts rows.
package aggregate

import (
	"fmt"
	"math/big"

	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/dataset"
	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/ddl"
	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/schema"
)

// Output table names.
const (
	TableProgrammingLang      = "programming_lang"
	TableOrganizationsStars   = "organizations_stars"
	TableSearchTermsRelevance = "search_terms_relevance"
)

// View is one output table: its definition and its rows.
type View struct {
	Table ddl.TableDef
	Frame dataset.Frame
}

// Relevance weights, as integer hundredths so group sums are exact and do not
// depend on row order.
const (
	forksWeight       = 150
	subscribersWeight = 132
	starsWeight       = 104
	weightScale       = 100
)

// All returns the three views in write order.
func All(f dataset.Frame) ([]View, error) {
	builders := []func(dataset.Frame) (View, error){
		LanguageDistribution,
		OrganizationStars,
		SearchTermRelevance,
	}
	out := make([]View, 0, len(builders))
	for _, b := range builders {
		v, err := b(f)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// LanguageDistribution counts repositories per non-nil language.
func LanguageDistribution(f dataset.Frame) (View, error) {
	idx, err := indexes(f, schema.Language)
	if err != nil {
		return View{}, fmt.Errorf("aggregate %s: %w", TableProgrammingLang, err)
	}
	lang := idx[0]

	// A nil language is not a group; COUNT(*) counts every other row.
	counts := map[string]int64{}
	for _, row := range f.Rows {
		s, ok := row[lang].(string)
		if !ok {
			continue
		}
		counts[s]++
	}

	groups := make([]groupKey, 0, len(counts))
	for k := range counts {
		groups = append(groups, groupKey{valid: true, s: k})
	}
	sortKeys(groups)

	rows := make([][]any, len(groups))
	for i, k := range groups {
		rows[i] = []any{k.s, counts[k.s]}
	}

	return View{
		Table: ddl.TableDef{
			FQN: TableProgrammingLang,
			Columns: []ddl.ColumnDef{
				{Name: "language_name", Type: ddl.TypeText, Nullable: true},
				{Name: "repo_count", Type: ddl.TypeBigInt, Nullable: false},
			},
		},
		Frame: dataset.Frame{Columns: []string{"language_name", "repo_count"}, Rows: rows},
	}, nil
}

// OrganizationStars sums stars per username over organization-owned rows.
// A nil username forms its own group.
func OrganizationStars(f dataset.Frame) (View, error) {
	idx, err := indexes(f, schema.OwnerType, schema.Username, schema.Stars)
	if err != nil {
		return View{}, fmt.Errorf("aggregate %s: %w", TableOrganizationsStars, err)
	}
	typ, user, stars := idx[0], idx[1], idx[2]

	sums := map[groupKey]*nullSum{}
	for _, row := range f.Rows {
		// Exact, case-sensitive match; a nil type is not an organization.
		if t, ok := row[typ].(string); !ok || t != schema.OrganizationType {
			continue
		}
		k := keyOf(row[user])
		s := sums[k]
		if s == nil {
			s = &nullSum{}
			sums[k] = s
		}
		// The group exists even when every stars value is nil; it then
		// sums to nil.
		if v, ok := row[stars].(int64); ok {
			s.add(big.NewInt(v))
		}
	}

	groups := keysOf(sums)
	rows := make([][]any, len(groups))
	for i, k := range groups {
		rows[i] = []any{k.value(), sums[k].int64Value()}
	}

	return View{
		Table: ddl.TableDef{
			FQN: TableOrganizationsStars,
			Columns: []ddl.ColumnDef{
				{Name: "organization_name", Type: ddl.TypeText, Nullable: true},
				{Name: "total_stars", Type: ddl.TypeBigInt, Nullable: true},
			},
		},
		Frame: dataset.Frame{Columns: []string{"organization_name", "total_stars"}, Rows: rows},
	}, nil
}

// SearchTermRelevance sums 1.5*forks + 1.32*subscribers + 1.04*stars per
// search term.
func SearchTermRelevance(f dataset.Frame) (View, error) {
	idx, err := indexes(f, schema.SearchTerm, schema.Forks, schema.Subscribers, schema.Stars)
	if err != nil {
		return View{}, fmt.Errorf("aggregate %s: %w", TableSearchTermsRelevance, err)
	}
	term, forks, subs, stars := idx[0], idx[1], idx[2], idx[3]

	sums := map[groupKey]*nullSum{}
	for _, row := range f.Rows {
		k := keyOf(row[term])
		s := sums[k]
		if s == nil {
			s = &nullSum{}
			sums[k] = s
		}
		// A row with any nil operand has a nil score and is skipped by SUM.
		if score, ok := weightedScore(row[forks], row[subs], row[stars]); ok {
			s.add(score)
		}
	}

	// Single rounding step: exact hundredths to the nearest float64.
	groups := keysOf(sums)
	rows := make([][]any, len(groups))
	for i, k := range groups {
		rows[i] = []any{k.value(), sums[k].scaledFloat(weightScale)}
	}

	return View{
		Table: ddl.TableDef{
			FQN: TableSearchTermsRelevance,
			Columns: []ddl.ColumnDef{
				{Name: "search_term", Type: ddl.TypeText, Nullable: true},
				{Name: "relevance_score", Type: ddl.TypeDouble, Nullable: true},
			},
		},
		Frame: dataset.Frame{Columns: []string{"search_term", "relevance_score"}, Rows: rows},
	}, nil
}

// weightedScore returns the row's relevance in hundredths, or ok=false when
// any operand is nil.
func weightedScore(forks, subs, stars any) (*big.Int, bool) {
	f, ok1 := forks.(int64)
	s, ok2 := subs.(int64)
	st, ok3 := stars.(int64)
	if !ok1 || !ok2 || !ok3 {
		return nil, false
	}
	score := new(big.Int).Mul(big.NewInt(f), big.NewInt(forksWeight))
	score.Add(score, new(big.Int).Mul(big.NewInt(s), big.NewInt(subscribersWeight)))
	score.Add(score, new(big.Int).Mul(big.NewInt(st), big.NewInt(starsWeight)))
	return score, true
}

// indexes resolves column positions once per view, so a missing column fails
// the view instead of panicking mid-scan.
func indexes(f dataset.Frame, names ...string) ([]int, error) {
	out := make([]int, len(names))
	for i, n := range names {
		j := f.Index(n)
		if j < 0 {
			return nil, fmt.Errorf("column %q not in dataset", n)
		}
		out[i] = j
	}
	return out, nil
}
