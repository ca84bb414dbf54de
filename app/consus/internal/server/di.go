package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/consus/app/consus/internal/service"
)

// ProviderSet 是 consus 服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,

	// Core providers
	NewSearchEngine,
	NewAIBridge,

	// Service providers
	service.NewConsusService,
)
