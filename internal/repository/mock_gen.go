// internal/repository/mock_gen.go
package repository

//go:generate mockgen -source=./user.go -destination=../mocks/mock_user_repository.go -package=mocks UserRepositoryIface
//go:generate mockgen -source=./code.go -destination=../mocks/mock_code_repository.go -package=mocks CodeRepositoryIface
//go:generate mockgen -source=./business.go -destination=../mocks/mock_business_repository.go -package=mocks BusinessRepositoryIface
