package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"isoworld/internal/component"
	"isoworld/internal/ecs"
	"isoworld/internal/geom"
)

// Step integrates every Velocity holder over dt, in creation order. Each
// mover sees the positions already committed by earlier movers in the same
// step. Velocity on a blocked axis is zeroed so a resting body stays put.
//
// Entities with a Velocity but no Body move without collision. Movers
// destroyed, or stripped of their Velocity, by a listener earlier in the
// same step are skipped.
func (c *Collider) Step(contacts *ContactSet, dt float64) ([]Movement, error) {
	v := c.w.View()
	var movers []ecs.EntityID
	for id := range v.EntitiesWithComponent(component.CVelocity) {
		movers = append(movers, id)
	}

	results := make([]Movement, 0, len(movers))
	for _, id := range movers {
		vel, ok := c.w.Get(id, component.CVelocity).(component.Velocity)
		if !ok {
			continue
		}
		if vel.Gravity {
			vel.V[geom.AxisZ] += c.cfg.Gravity * dt
		}
		delta := vel.V.Mul(dt)
		if delta == (mgl64.Vec3{}) {
			continue
		}

		if !c.w.Has(id, component.CBody) {
			pos, _ := c.w.Position(id)
			if err := c.w.Move(id, pos.Add(delta)); err != nil {
				return results, err
			}
			results = append(results, Movement{Requested: delta, Applied: delta})
			if err := c.keep(id, vel); err != nil {
				return results, err
			}
			continue
		}

		m, err := c.ResolveMovement(contacts, id, delta)
		if err != nil {
			return results, err
		}
		for _, a := range []geom.Axis{geom.AxisX, geom.AxisY, geom.AxisZ} {
			if m.Blocked(a) {
				vel.V[a] = 0
			}
		}
		results = append(results, m)
		if err := c.keep(id, vel); err != nil {
			return results, err
		}
	}
	if len(results) > 0 {
		c.log.Debug("movement step", zap.Int("movers", len(results)), zap.Int("contacts", contacts.Len()))
	}
	return results, nil
}

// keep writes vel back unless a listener reacting to the move removed the
// mover or its Velocity.
func (c *Collider) keep(id ecs.EntityID, vel component.Velocity) error {
	if !c.w.Has(id, component.CVelocity) {
		return nil
	}
	return c.w.Add(id, vel)
}

// Walk resolves a one-off displacement such as a player step. Unlike Step it
// ignores the entity's Velocity.
func (c *Collider) Walk(contacts *ContactSet, id ecs.EntityID, dx, dy, dz float64) (Movement, error) {
	return c.ResolveMovement(contacts, id, mgl64.Vec3{dx, dy, dz})
}
