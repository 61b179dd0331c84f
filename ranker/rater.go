/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package ranker

import (
	"fmt"

	"github.com/intinig/go-openskill/rating"
	"github.com/intinig/go-openskill/types"
)

// Rating is a Bayesian skill estimate: Mu is the mean and Sigma the
// uncertainty (standard deviation).
type Rating struct {
	Mu    float64
	Sigma float64
}

// Rater computes rating updates for one ranked outcome. teams[0] placed
// first, teams[1] second and so on. The result must have the same shape as
// the input.
type Rater interface {
	Default() Rating
	Rate(teams [][]Rating) ([][]Rating, error)
}

// OpenSkill rates matches with go-openskill's default Weng-Lin
// (Plackett-Luce) model. Its prior is the usual mu=25, sigma=25/3.
type OpenSkill struct{}

func NewOpenSkill() *OpenSkill {
	return &OpenSkill{}
}

func (o *OpenSkill) Default() Rating {
	r := rating.New()
	return Rating{Mu: r.Mu, Sigma: r.Sigma}
}

func (o *OpenSkill) Rate(teams [][]Rating) ([][]Rating, error) {
	if len(teams) < 2 {
		return nil, fmt.Errorf("openskill: need at least 2 teams, have %d", len(teams))
	}

	in := make([]types.Team, len(teams))
	for i, team := range teams {
		if len(team) == 0 {
			return nil, fmt.Errorf("openskill: team %d is empty", i)
		}
		in[i] = make(types.Team, len(team))
		for j, r := range team {
			in[i][j] = types.Rating{Mu: r.Mu, Sigma: r.Sigma}
		}
	}

	out := rating.Rate(in, nil)
	if len(out) != len(teams) {
		return nil, fmt.Errorf("openskill: rated %d teams, expected %d", len(out), len(teams))
	}

	ret := make([][]Rating, len(out))
	for i, team := range out {
		if len(team) != len(teams[i]) {
			return nil, fmt.Errorf("openskill: team %d rated %d members, expected %d",
				i, len(team), len(teams[i]))
		}
		ret[i] = make([]Rating, len(team))
		for j, r := range team {
			ret[i][j] = Rating{Mu: r.Mu, Sigma: r.Sigma}
		}
	}

	return ret, nil
}
