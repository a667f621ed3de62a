package srv

type Srv struct {
	rbac  *RBACSrv
	ai    *AI
	tower *Tower
}

func SetupSrvs(opts ...ApplyFunc) *Srv {
	a := &Srv{
		rbac: SetupRBACSrv(), // 角色鉴权
	}

	for _, opt := range opts {
		opt(a)
	}
	return a
}

type ApplyFunc func(s *Srv)

func (s *Srv) RBAC() *RBACSrv {
	return s.rbac
}

func (s *Srv) AI() *AI {
	return s.ai
}

func (s *Srv) Tower() *Tower {
	return s.tower
}
