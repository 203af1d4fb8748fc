package engine

import (
	"math/rand"
	"sort"

	"github.com/nestcut/nestcut/internal/model"
)

// GeneticConfig holds parameters for the genetic order optimizer.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
}

// DefaultGeneticConfig returns sensible default parameters.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 50,
		Generations:    100,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
	}
}

// geneticSeed fixes the RNG so nest runs stay deterministic.
const geneticSeed = 42

// gene represents a single placement decision in the chromosome.
type gene struct {
	itemIndex int  // Index into the item slice
	rotated   bool // Whether to try the swapped orientation first
}

// chromosome represents a candidate solution: an ordering of items with
// rotation preferences.
type chromosome struct {
	genes   []gene
	fitness float64
}

// geneticOptimizer searches item orderings for one fixed-size region.
type geneticOptimizer struct {
	settings model.NestSettings
	config   GeneticConfig
	items    []model.Item
	regionW  float64
	regionH  float64
	rng      *rand.Rand
}

func newGeneticOptimizer(settings model.NestSettings, config GeneticConfig, items []model.Item, regionW, regionH float64, seed int64) *geneticOptimizer {
	return &geneticOptimizer{
		settings: settings,
		config:   config,
		items:    items,
		regionW:  regionW,
		regionH:  regionH,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// optimize runs the genetic algorithm and returns the best decoded packing.
func (g *geneticOptimizer) optimize() ([]model.Placement, []model.Item) {
	population := g.initPopulation()
	for i := range population {
		population[i].fitness = g.evaluate(population[i])
	}

	for gen := 0; gen < g.config.Generations; gen++ {
		sort.Slice(population, func(i, j int) bool {
			return population[i].fitness > population[j].fitness
		})

		newPop := make([]chromosome, 0, g.config.PopulationSize)

		// Elitism: carry over the best individuals unchanged
		eliteCount := g.config.EliteCount
		if eliteCount > len(population) {
			eliteCount = len(population)
		}
		for i := 0; i < eliteCount; i++ {
			newPop = append(newPop, g.copyChromosome(population[i]))
		}

		for len(newPop) < g.config.PopulationSize {
			parent1 := g.tournamentSelect(population)
			parent2 := g.tournamentSelect(population)
			child := g.orderCrossover(parent1, parent2)
			g.mutate(&child)
			child.fitness = g.evaluate(child)
			newPop = append(newPop, child)
		}

		population = newPop
	}

	sort.Slice(population, func(i, j int) bool {
		return population[i].fitness > population[j].fitness
	})
	return g.decode(population[0])
}

// initPopulation creates the initial random population, with one chromosome
// seeded from the greedy area-descending order as a good starting point.
func (g *geneticOptimizer) initPopulation() []chromosome {
	n := len(g.items)
	population := make([]chromosome, g.config.PopulationSize)

	for i := range population {
		genes := make([]gene, n)
		perm := g.rng.Perm(n)
		for j := 0; j < n; j++ {
			it := g.items[perm[j]]
			canRotate := g.settings.AllowRotation && it.Width != it.Height
			genes[j] = gene{
				itemIndex: perm[j],
				rotated:   canRotate && g.rng.Float64() < 0.5,
			}
		}
		population[i] = chromosome{genes: genes}
	}

	if g.config.PopulationSize > 0 {
		population[0] = g.createGreedyChromosome()
	}
	return population
}

// createGreedyChromosome builds a chromosome sorted by area descending.
func (g *geneticOptimizer) createGreedyChromosome() chromosome {
	n := len(g.items)
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return g.items[indices[i]].Area() > g.items[indices[j]].Area()
	})

	genes := make([]gene, n)
	for i, idx := range indices {
		genes[i] = gene{itemIndex: idx}
	}
	return chromosome{genes: genes}
}

// evaluate computes the fitness of a chromosome by decoding it into a
// packing and measuring region coverage, with unplaced items penalized.
func (g *geneticOptimizer) evaluate(c chromosome) float64 {
	placements, unplaced := g.decode(c)

	regionArea := g.regionW * g.regionH
	if regionArea == 0 {
		return 0
	}

	var usedArea float64
	for _, p := range placements {
		usedArea += p.Width * p.Height
	}

	fitness := usedArea/regionArea - float64(len(unplaced))*0.1
	if fitness < 0 {
		fitness = 0
	}
	return fitness
}

// decode converts a chromosome into an actual packing using the guillotine
// packer. The gene's rotation flag only flips the trial order; the other
// orientation remains the fallback.
func (g *geneticOptimizer) decode(c chromosome) ([]model.Placement, []model.Item) {
	packer := NewGuillotinePacker(g.regionW, g.regionH, g.settings.Spacing)

	var placements []model.Placement
	var unplaced []model.Item

	for _, gn := range c.genes {
		it := g.items[gn.itemIndex]
		if p, ok := placeItem(packer, g.settings, it, gn.rotated); ok {
			placements = append(placements, p)
		} else {
			unplaced = append(unplaced, it)
		}
	}
	return placements, unplaced
}

// tournamentSelect picks the best individual from a random tournament.
func (g *geneticOptimizer) tournamentSelect(population []chromosome) chromosome {
	best := population[g.rng.Intn(len(population))]
	for i := 1; i < g.config.TournamentSize; i++ {
		candidate := population[g.rng.Intn(len(population))]
		if candidate.fitness > best.fitness {
			best = candidate
		}
	}
	return g.copyChromosome(best)
}

// orderCrossover implements Order Crossover (OX1) for permutation
// chromosomes. It preserves the relative order of genes from both parents.
func (g *geneticOptimizer) orderCrossover(parent1, parent2 chromosome) chromosome {
	n := len(parent1.genes)
	if n <= 2 {
		return g.copyChromosome(parent1)
	}

	point1 := g.rng.Intn(n)
	point2 := g.rng.Intn(n)
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	child := chromosome{genes: make([]gene, n)}

	inSegment := make(map[int]bool)
	for i := point1; i <= point2; i++ {
		child.genes[i] = parent1.genes[i]
		inSegment[parent1.genes[i].itemIndex] = true
	}

	childIdx := (point2 + 1) % n
	for _, pg := range parent2.genes {
		if !inSegment[pg.itemIndex] {
			child.genes[childIdx] = pg
			childIdx = (childIdx + 1) % n
		}
	}
	return child
}

// mutate applies swap, rotation-toggle, and inversion mutations.
func (g *geneticOptimizer) mutate(c *chromosome) {
	n := len(c.genes)
	if n < 2 {
		return
	}

	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
	}

	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		it := g.items[c.genes[i].itemIndex]
		if g.settings.AllowRotation && it.Width != it.Height {
			c.genes[i].rotated = !c.genes[i].rotated
		}
	}

	// Inversion mutation: reverse a small segment (less frequent)
	if g.rng.Float64() < g.config.MutationRate*0.5 {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		if i > j {
			i, j = j, i
		}
		for i < j {
			c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
			i++
			j--
		}
	}
}

func (g *geneticOptimizer) copyChromosome(c chromosome) chromosome {
	genes := make([]gene, len(c.genes))
	copy(genes, c.genes)
	return chromosome{genes: genes, fitness: c.fitness}
}

// nestGenetic packs items into one fixed-size region using the genetic
// order search. The seed is fixed, so repeated runs on the same input give
// identical results.
func nestGenetic(settings model.NestSettings, items []model.Item, regionW, regionH float64) ([]model.Placement, []model.Item) {
	if len(items) == 0 {
		return nil, nil
	}

	config := DefaultGeneticConfig()
	// Scale effort for larger problems
	if len(items) > 20 {
		config.Generations = 150
	}
	if len(items) > 50 {
		config.Generations = 200
		config.PopulationSize = 80
	}

	ga := newGeneticOptimizer(settings, config, items, regionW, regionH, geneticSeed)
	return ga.optimize()
}
