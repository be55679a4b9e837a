package env

import (
	"math"
	"time"

	"golang.org/x/exp/rand"
)

// Classic cart-pole balancing task: push a cart left or right to keep the
// pole upright. Observation is [x, xDot, theta, thetaDot].
const (
	CartPoleActions   = 2
	CartPoleEmbedding = 4
)

const (
	gravity     = 9.8
	cartMass    = 1.0
	poleMass    = 0.1
	totalMass   = cartMass + poleMass
	poleHalfLen = 0.5
	poleMassLen = poleMass * poleHalfLen
	forceMag    = 10.0
	tau         = 0.02 // Seconds per step, Euler integration

	thetaLimit = 12 * 2 * math.Pi / 360
	xLimit     = 2.4
)

type CartPole struct {
	rng *rand.Rand

	x        float64
	xDot     float64
	theta    float64
	thetaDot float64
	done     bool
}

func NewCartPole(rng *rand.Rand) *CartPole {
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return &CartPole{rng: rng, done: true}
}

func (c *CartPole) Reset() []float64 {
	c.x = c.rng.Float64()*0.1 - 0.05
	c.xDot = c.rng.Float64()*0.1 - 0.05
	c.theta = c.rng.Float64()*0.1 - 0.05
	c.thetaDot = c.rng.Float64()*0.1 - 0.05
	c.done = false
	return c.observation()
}

func (c *CartPole) Step(action int) ([]float64, float64, bool) {
	if c.done {
		return c.observation(), 0, true
	}

	c.x, c.xDot, c.theta, c.thetaDot = stepPhysics(c.x, c.xDot, c.theta, c.thetaDot, action)
	c.done = failed(c.x, c.theta)

	// One point per step survived, terminating step included.
	return c.observation(), 1, c.done
}

func (c *CartPole) observation() []float64 {
	return []float64{c.x, c.xDot, c.theta, c.thetaDot}
}

func stepPhysics(x, xDot, theta, thetaDot float64, action int) (float64, float64, float64, float64) {
	force := forceMag
	if action == 0 {
		force = -forceMag
	}

	cosTheta := math.Cos(theta)
	sinTheta := math.Sin(theta)

	temp := (force + poleMassLen*thetaDot*thetaDot*sinTheta) / totalMass
	thetaAcc := (gravity*sinTheta - cosTheta*temp) /
		(poleHalfLen * (4.0/3.0 - poleMass*cosTheta*cosTheta/totalMass))
	xAcc := temp - poleMassLen*thetaAcc*cosTheta/totalMass

	x += tau * xDot
	xDot += tau * xAcc
	theta += tau * thetaDot
	thetaDot += tau * thetaAcc
	return x, xDot, theta, thetaDot
}

func failed(x, theta float64) bool {
	return x < -xLimit || x > xLimit || theta < -thetaLimit || theta > thetaLimit
}
