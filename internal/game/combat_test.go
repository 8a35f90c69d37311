package game

import (
	"math"
	"testing"
)

func TestApplyHit_ArmourAbsorbsWholeHit(t *testing.T) {
	u := NewUnit(1, KindFrigate, V(0, 0))
	toArmor, amt := ApplyHit(u, 50, 8)
	if !toArmor || amt != 8 {
		t.Fatalf("expected armour hit of 8, got armour=%v amount=%.0f", toArmor, amt)
	}
	if u.Health != u.MaxHealth || u.Armor != u.MaxArmor-8 {
		t.Fatalf("expected health %.0f armour %.0f, got %.0f / %.0f", u.MaxHealth, u.MaxArmor-8, u.Health, u.Armor)
	}
}

func TestApplyHit_NoSpillWhenArmourNearlyGone(t *testing.T) {
	u := NewUnit(1, KindFrigate, V(0, 0))
	u.Armor = 2
	ApplyHit(u, 50, 8)
	if u.Armor != 0 || u.Health != u.MaxHealth {
		t.Fatalf("expected armour 0 and untouched hull, got armour %.0f health %.0f", u.Armor, u.Health)
	}
	ApplyHit(u, 50, 8)
	if u.Health != u.MaxHealth-50 {
		t.Fatalf("expected hull hit once armour is down, got %.0f", u.Health)
	}
}

func TestApplyHit_UnarmouredTakesHullDamage(t *testing.T) {
	u := NewUnit(1, KindInterceptor, V(0, 0))
	ApplyHit(u, 6, 2)
	if u.Health != u.MaxHealth-6 {
		t.Fatalf("expected health %.0f, got %.0f", u.MaxHealth-6, u.Health)
	}
}

func TestProjectile_LifetimeExpiry(t *testing.T) {
	p := NewProjectile(V(0, 0), V(1, 0), projectileSpeed, 1, 1, false)
	steps := int(math.Round(projectileLifetime / DefaultDt))
	for i := 1; i <= steps; i++ {
		expired := p.Update(DefaultDt)
		if i < steps && expired {
			t.Fatalf("projectile expired early at step %d of %d (life %.6f)", i, steps, p.Life)
		}
		if i == steps && !expired {
			t.Fatalf("expected expiry at step %d, life left %.9f", steps, p.Life)
		}
	}
}

func TestProjectile_StraightLine(t *testing.T) {
	p := NewProjectile(V(0, 0), V(3, 4), 100, 1, 1, false)
	p.Update(1)
	if !p.Pos.Eq(V(60, 80), 1e-9) {
		t.Fatalf("expected (60,80), got %+v", p.Pos)
	}
}

func TestProjectileHits_RespectsRotatedSilhouette(t *testing.T) {
	u := NewUnit(1, KindInterceptor, V(100, 100)) // triangle, nose at +x
	// Just behind the nose tip but off to the side: inside the bounding box,
	// outside the triangle.
	p := &Projectile{Pos: V(108, 108), Radius: 1}
	if p.Hits(u) {
		t.Fatal("expected miss in the empty corner of the bounding box")
	}
	p.Pos = V(100, 100)
	if !p.Hits(u) {
		t.Fatal("expected hit at the hull centre")
	}
	p.Pos = V(113, 100) // circle edge touches the nose
	p.Radius = 3
	if !p.Hits(u) {
		t.Fatal("expected perimeter sample to register a hit")
	}
}

func TestAutoFire_NearestTargetInRange(t *testing.T) {
	cm := NewCombatManager(nil)
	src := NewUnit(1, KindFrigate, V(0, 0))
	near := NewUnit(2, KindPirateFrigate, V(200, 0))
	far := NewUnit(3, KindPirateFrigate, V(0, 250))
	if n := cm.AutoFire([]*Unit{src}, []*Unit{far, near}, 1); n != 1 {
		t.Fatalf("expected one shot, got %d", n)
	}
	p := cm.Projectiles[0]
	if !p.Dir.Eq(V(1, 0), 1e-9) {
		t.Fatalf("expected shot toward nearest target, dir %+v", p.Dir)
	}
	if p.HullDamage != src.BulletDamage || p.ArmorDamage != src.ArmorDamage || p.Enemy {
		t.Fatalf("expected payload copied from source, got %+v", *p)
	}
	if src.ReadyToFire() {
		t.Fatal("expected cooldown reset after firing")
	}
	if n := cm.AutoFire([]*Unit{src}, []*Unit{near}, 1); n != 0 {
		t.Fatalf("expected no shot while cooling down, got %d", n)
	}
}

func TestAutoFire_NearestOutOfRangeHoldsFire(t *testing.T) {
	cm := NewCombatManager(nil)
	src := NewUnit(1, KindInterceptor, V(0, 0))
	tgt := NewUnit(2, KindPirateFrigate, V(src.FireRange+10, 0))
	if n := cm.AutoFire([]*Unit{src}, []*Unit{tgt}, 1); n != 0 {
		t.Fatalf("expected no shot out of range, got %d", n)
	}
	if !src.ReadyToFire() {
		t.Fatal("expected cooldown untouched when not firing")
	}
}

func TestAutoFire_UnarmedAndDeadSkipped(t *testing.T) {
	cm := NewCombatManager(nil)
	rc := NewUnit(1, KindResourceCollector, V(0, 0))
	fr := NewUnit(2, KindFrigate, V(0, 0))
	dead := NewUnit(3, KindPirateFrigate, V(30, 0))
	dead.Health = 0
	if n := cm.AutoFire([]*Unit{rc, fr}, []*Unit{dead}, 1); n != 0 {
		t.Fatalf("expected no shots at a dead target or from an unarmed unit, got %d", n)
	}
}

func TestResolveHits_OpposingSideOnlyAndSingleHit(t *testing.T) {
	cm := NewCombatManager(nil)
	player := NewUnit(1, KindFrigate, V(100, 100))
	enemyA := NewUnit(2, KindPirateFrigate, V(300, 100))
	enemyB := NewUnit(3, KindPirateFrigate, V(300, 100))
	cm.Projectiles = []*Projectile{
		{Pos: V(100, 100), Radius: 3, HullDamage: 10, ArmorDamage: 5},              // player round on a player hull
		{Pos: V(300, 100), Radius: 3, HullDamage: 10, ArmorDamage: 5},              // player round on two stacked enemies
		{Pos: V(100, 100), Radius: 3, HullDamage: 10, ArmorDamage: 5, Enemy: true}, // enemy round on the player
	}
	hits := cm.ResolveHits([]*Unit{player}, []*Unit{enemyA, enemyB})
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if len(cm.Projectiles) != 1 {
		t.Fatalf("expected the friendly round to survive, %d left", len(cm.Projectiles))
	}
	if enemyA.Armor != enemyA.MaxArmor-5 || enemyB.Armor != enemyB.MaxArmor {
		t.Fatalf("expected only the first enemy hit, armour %.0f / %.0f", enemyA.Armor, enemyB.Armor)
	}
	if player.Armor != player.MaxArmor-5 {
		t.Fatalf("expected player armour hit by enemy round, got %.0f", player.Armor)
	}
}

func TestApplyCollisionDamage_BothSides(t *testing.T) {
	p := NewUnit(1, KindInterceptor, V(100, 100))
	e := NewUnit(2, KindPirateFrigate, V(110, 100))
	if n := ApplyCollisionDamage([]*Unit{p}, []*Unit{e}, 20, 0.5); n != 1 {
		t.Fatalf("expected one colliding pair, got %d", n)
	}
	if p.Health != p.MaxHealth-10 {
		t.Fatalf("expected interceptor hull -10, got %.1f", p.Health)
	}
	if e.Armor != e.MaxArmor-10 {
		t.Fatalf("expected pirate armour -10, got %.1f", e.Armor)
	}
}
