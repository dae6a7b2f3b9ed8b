package gateway

func (s *UnitTestSuite) TestDeploymentName() {
	s.Equal("process.bpmn", DeploymentName("", "/a/b/process.bpmn"))
	s.Equal("flow.bpmn", DeploymentName("", "/a/b/flow.xml"))
	s.Equal("noext.bpmn", DeploymentName("", "/a/b/noext"))
	s.Equal("foo.bpmn", DeploymentName("foo", "/anything/else.bpmn"))
	s.Equal("foo.bpmn", DeploymentName("foo.bpmn", "/anything/else.xml"))
	s.Equal("foo.bpmn", DeploymentName(DeploymentName("foo", ""), ""))
}

func (s *UnitTestSuite) TestDeploymentNameFallback() {
	s.Equal("", DeploymentName("", ""))
	s.Equal("", DeploymentName("", "/"))
	s.NotEmpty(s.logs.AllEntries())
}
